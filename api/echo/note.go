package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/user"
)

type noteApi struct {
	deps ServerDeps
}

func registerNoteAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := noteApi{deps: deps}

	ng := g.Group("/notes", jwt, capabilityMiddleware(user.CapManageNotes))
	ng.GET("", api.query)
	ng.POST("", api.create)
	ng.GET("/:id", api.retrieve)
	ng.DELETE("/:id", api.destroy)
}

// Handlers

func (api *noteApi) query(ctx echo.Context) error {
	notes, err := api.deps.NoteSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	nt, err := api.deps.NoteSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, nt)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	nt, err := api.deps.NoteSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, nt)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	if err := api.deps.NoteSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}
