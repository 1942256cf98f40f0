// Package client implements the data-provider side of the app: a per-session
// in-memory cache refreshed in full at startup, with optimistic mutation
// methods over a pluggable Backend.
package client

import (
	"context"

	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
)

// Backend is the remote surface the provider synchronizes against.
type Backend interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	CreateProject(ctx context.Context, np project.NewProject) (project.Project, error)
	UpdateProject(ctx context.Context, id string, up project.UpdateProject) (project.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error)
	UpdateTask(ctx context.Context, id string, up task.UpdateTask) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListNotes(ctx context.Context) ([]note.Note, error)
	CreateNote(ctx context.Context, nn note.NewNote) (note.Note, error)
	DeleteNote(ctx context.Context, id string) error
}
