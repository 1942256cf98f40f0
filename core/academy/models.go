package academy

import "time"

type (
	// ClassRoom is a read-only roster summary seeded into the store.
	ClassRoom struct {
		ID                  string `json:"id"`
		Name                string `json:"name"`
		TotalStudents       int    `json:"total_students"`
		TotalProjects       int    `json:"total_projects"`
		AssignedSupervisors int    `json:"assigned_supervisors"`
		Program             string `json:"program,omitempty"`
		Session             string `json:"session,omitempty"`
	}

	// Teacher carries the supervision capacity counters shown on dashboards.
	Teacher struct {
		ID                    string `json:"id"`
		Name                  string `json:"name"`
		EmpID                 string `json:"emp_id"`
		Designation           string `json:"designation"`
		ProjectsLimit         int    `json:"projects_limit"`
		AssignedProjectsCount int    `json:"assigned_projects_count"`
	}

	Notice struct {
		ID             string    `json:"id"`
		Headline       string    `json:"headline"`
		Description    string    `json:"description"`
		ReceiverEntity string    `json:"receiver_entity"`
		ReceiverName   string    `json:"receiver_name"`
		CreatedAt      time.Time `json:"created_at"`
	}
)

type (
	AdminDashboard struct {
		Classes     int      `json:"classes"`
		Projects    int      `json:"projects"`
		Supervisors int      `json:"supervisors"`
		Students    int      `json:"students"`
		Notices     []Notice `json:"notices"`
	}

	StudentDashboard struct {
		TodoList []TodoItem `json:"my_todo_list"`
		Notices  []Notice   `json:"notices"`
	}

	// TodoItem is the trimmed task view shown on the student dashboard.
	TodoItem struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		Status   string    `json:"status"`
		Deadline time.Time `json:"deadline"`
	}

	TeacherDashboard struct {
		ClassesExamination       int      `json:"classes_examination"`
		ClassesSupervision       int      `json:"classes_supervision"`
		ProjectsSupervision      int      `json:"projects_supervision"`
		ProjectsExamination      int      `json:"projects_examination"`
		ProjectsSupervisionLimit int      `json:"projects_supervision_limit"`
		Notices                  []Notice `json:"notices"`
	}
)
