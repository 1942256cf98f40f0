package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/user"
)

type projectApi struct {
	deps ServerDeps
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := projectApi{deps: deps}

	pg := g.Group("/projects", jwt)
	pg.GET("", api.query, capabilityMiddleware(user.CapViewProjects))
	pg.POST("", api.create, capabilityMiddleware(user.CapCreateProject))

	dg := pg.Group("/:id")
	dg.GET("", api.retrieve, capabilityMiddleware(user.CapViewProjects))
	dg.PATCH("", api.update, capabilityMiddleware(user.CapUpdateProject))
	dg.DELETE("", api.destroy, capabilityMiddleware(user.CapDeleteProject))
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	filter := new(project.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []project.Project{})
	}
	filter.Clean()

	// students only ever see their own projects
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if claims.Role == user.RoleStudent {
		filter.StudentID = claims.Subject
	}

	projects, err := api.deps.ProjectSvc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return ctx.JSON(http.StatusOK, projects)
}

func (api *projectApi) create(ctx echo.Context) error {
	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}

	// a student always owns what they create
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if claims.Role == user.RoleStudent {
		data.StudentID = claims.Subject
		data.StudentName = claims.Name
	}

	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	prj, err := api.deps.ProjectSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, prj)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	prj, err := api.getVisibleProject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) update(ctx echo.Context) error {
	prj, err := api.getVisibleProject(ctx)
	if err != nil {
		return err
	}

	var data project.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if reviewFields(data) && !claims.Role.Can(user.CapReviewProject) {
		return errHttpForbidden
	}

	prj, err = api.deps.ProjectSvc.Update(ctx.Request().Context(), prj.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating project")
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) destroy(ctx echo.Context) error {
	// idempotent: deleting a missing id is still a 204
	if err := api.deps.ProjectSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// getVisibleProject loads the addressed project, hiding other students'
// projects behind a 404.
func (api *projectApi) getVisibleProject(ctx echo.Context) (project.Project, error) {
	prj, err := api.deps.ProjectSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return project.Project{}, err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return project.Project{}, err
	}
	if claims.Role == user.RoleStudent && prj.StudentID != claims.Subject {
		return project.Project{}, errHttpNotFound
	}
	return prj, nil
}

// reviewFields reports whether the patch touches supervisor-review territory:
// feedback text or a decision status.
func reviewFields(up project.UpdateProject) bool {
	if up.SupervisorFeedback != nil {
		return true
	}
	if up.Status != nil && (*up.Status == project.StatusApproved || *up.Status == project.StatusRejected) {
		return true
	}
	return false
}
