package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/academy"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/user"
)

type dashboardApi struct {
	deps ServerDeps
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{deps: deps}

	ag := g.Group("/admin", jwt, capabilityMiddleware(user.CapManageUsers))
	ag.GET("/dashboard", api.adminDashboard)
	ag.GET("/classes", api.queryClasses)
	ag.GET("/teachers", api.queryTeachers)

	sg := g.Group("/student", jwt, capabilityMiddleware(user.CapViewDashboards))
	sg.GET("/dashboard", api.studentDashboard)

	tg := g.Group("/teacher", jwt, capabilityMiddleware(user.CapReviewProject))
	tg.GET("/dashboard", api.teacherDashboard)
	tg.GET("/supervision-projects", api.supervisionProjects)
}

// Handlers

func (api *dashboardApi) adminDashboard(ctx echo.Context) error {
	dash, err := api.deps.AcademySvc.AdminDashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building admin dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *dashboardApi) queryClasses(ctx echo.Context) error {
	classes, err := api.deps.AcademySvc.QueryClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []academy.ClassRoom{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *dashboardApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.deps.AcademySvc.QueryTeachers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []academy.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *dashboardApi) studentDashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	dash, err := api.deps.AcademySvc.StudentDashboard(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "building student dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *dashboardApi) teacherDashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	dash, err := api.deps.AcademySvc.TeacherDashboard(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "building teacher dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *dashboardApi) supervisionProjects(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	projects, err := api.deps.ProjectSvc.Filter(ctx.Request().Context(), project.QueryFilter{SupervisorID: claims.Subject})
	if err != nil {
		return errors.Wrap(err, "querying supervised projects")
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return ctx.JSON(http.StatusOK, projects)
}
