package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrack/unitrack/core/academy"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
)

func TestDashboardAPI_admin(t *testing.T) {
	app := setup(t)
	adminToken := app.getToken(t, "admin@uni.edu")

	tests := []httpTest{
		{name: "auth required", path: "/api/admin/dashboard", wantCode: http.StatusUnauthorized},
		{name: "student forbidden", path: "/api/admin/dashboard", token: app.getToken(t, "john@uni.edu"), wantCode: http.StatusForbidden},
		{name: "supervisor forbidden", path: "/api/admin/teachers", token: app.getToken(t, "smith@uni.edu"), wantCode: http.StatusForbidden},
		{name: "dashboard", path: "/api/admin/dashboard", token: adminToken, wantCode: http.StatusOK},
		{name: "classes", path: "/api/admin/classes", token: adminToken, wantCode: http.StatusOK},
		{name: "teachers", path: "/api/admin/teachers", token: adminToken, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}

	rec := app.do(httpTest{path: "/api/admin/dashboard", token: adminToken})
	var dash academy.AdminDashboard
	decodeBody(t, rec, &dash)
	assert.Equal(t, 2, dash.Classes)
	assert.Equal(t, 2, dash.Projects)
	assert.Equal(t, 2, dash.Supervisors)
	assert.Equal(t, 2, dash.Students)
	assert.Len(t, dash.Notices, 2)

	rec = app.do(httpTest{path: "/api/admin/classes", token: adminToken})
	var classes []academy.ClassRoom
	decodeBody(t, rec, &classes)
	assert.Len(t, classes, 2)
}

func TestDashboardAPI_student(t *testing.T) {
	app := setup(t)
	token := app.getToken(t, "john@uni.edu")

	// supervisors and admins hold the dashboards capability too
	rec := app.do(httpTest{path: "/api/student/dashboard", token: app.getToken(t, "smith@uni.edu")})
	assert.Equal(t, http.StatusOK, rec.Code)

	// seed a few tasks for the todo list; only non-completed ones count
	for _, nt := range []task.NewTask{
		{ProjectID: "p1", Title: "one", Phase: task.PhasePlanning, AssignedToID: "u4"},
		{ProjectID: "p1", Title: "done", Phase: task.PhasePlanning, AssignedToID: "u4", Status: task.StatusCompleted},
		{ProjectID: "p1", Title: "two", Phase: task.PhaseDesign, AssignedToID: "u4"},
		{ProjectID: "p1", Title: "someone else's", Phase: task.PhaseDesign, AssignedToID: "u5"},
		{ProjectID: "p1", Title: "three", Phase: task.PhaseTesting, AssignedToID: "u4"},
		{ProjectID: "p1", Title: "overflow", Phase: task.PhaseTesting, AssignedToID: "u4"},
	} {
		rec := app.do(httpTest{method: http.MethodPost, path: "/api/tasks", token: token, body: marchallObj(t, nt)})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = app.do(httpTest{path: "/api/student/dashboard", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var dash academy.StudentDashboard
	decodeBody(t, rec, &dash)
	require.Len(t, dash.TodoList, 3) // capped, completed and foreign tasks skipped
	assert.Equal(t, "one", dash.TodoList[0].Title)
	assert.Equal(t, "two", dash.TodoList[1].Title)
	assert.Equal(t, "three", dash.TodoList[2].Title)
	assert.Len(t, dash.Notices, 2)
}

func TestDashboardAPI_teacher(t *testing.T) {
	app := setup(t)
	supervisorToken := app.getToken(t, "smith@uni.edu")

	rec := app.do(httpTest{path: "/api/teacher/dashboard", token: app.getToken(t, "john@uni.edu")})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(httpTest{path: "/api/teacher/dashboard", token: supervisorToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var dash academy.TeacherDashboard
	decodeBody(t, rec, &dash)
	assert.Equal(t, 1, dash.ProjectsSupervision) // u2 supervises p1
	assert.Equal(t, 1, dash.ProjectsExamination)
	assert.Equal(t, 10, dash.ProjectsSupervisionLimit)

	rec = app.do(httpTest{path: "/api/teacher/supervision-projects", token: supervisorToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []project.Project
	decodeBody(t, rec, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)
}
