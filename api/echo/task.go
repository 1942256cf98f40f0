package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/task"
	"github.com/unitrack/unitrack/core/user"
)

type taskApi struct {
	deps ServerDeps
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := taskApi{deps: deps}

	tg := g.Group("/tasks", jwt)
	tg.GET("", api.query, capabilityMiddleware(user.CapManageTasks))
	tg.POST("", api.create, capabilityMiddleware(user.CapManageTasks))

	dg := tg.Group("/:id", capabilityMiddleware(user.CapManageTasks))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *taskApi) query(ctx echo.Context) error {
	var (
		tasks []task.Task
		err   error
	)
	if pid := ctx.QueryParam("project_id"); pid != "" {
		tasks, err = api.deps.TaskSvc.QueryByProject(ctx.Request().Context(), pid)
	} else {
		tasks, err = api.deps.TaskSvc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	tsk, err := api.deps.TaskSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	tsk, err := api.deps.TaskSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) update(ctx echo.Context) error {
	var data task.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	tsk, err := api.deps.TaskSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	if err := api.deps.TaskSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}
