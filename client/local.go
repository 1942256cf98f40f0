package client

import (
	"context"
	"time"

	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
)

// LocalBackend serves the provider straight from the in-process services,
// sleeping a fixed latency before every call to model the network. The sleep
// is deliberate and not tied to the context: once issued, a call always runs
// to completion.
type LocalBackend struct {
	projects *project.Service
	tasks    *task.Service
	notes    *note.Service
	latency  time.Duration
}

var _ Backend = (*LocalBackend)(nil)

func NewLocalBackend(projects *project.Service, tasks *task.Service, notes *note.Service, latency time.Duration) *LocalBackend {
	return &LocalBackend{
		projects: projects,
		tasks:    tasks,
		notes:    notes,
		latency:  latency,
	}
}

func (b *LocalBackend) delay() {
	if b.latency > 0 {
		time.Sleep(b.latency)
	}
}

func (b *LocalBackend) ListProjects(ctx context.Context) ([]project.Project, error) {
	b.delay()
	return b.projects.QueryAll(ctx)
}

func (b *LocalBackend) GetProject(ctx context.Context, id string) (project.Project, error) {
	b.delay()
	return b.projects.GetByID(ctx, id)
}

func (b *LocalBackend) CreateProject(ctx context.Context, np project.NewProject) (project.Project, error) {
	b.delay()
	return b.projects.Create(ctx, np)
}

func (b *LocalBackend) UpdateProject(ctx context.Context, id string, up project.UpdateProject) (project.Project, error) {
	b.delay()
	return b.projects.Update(ctx, id, up)
}

func (b *LocalBackend) DeleteProject(ctx context.Context, id string) error {
	b.delay()
	return b.projects.Delete(ctx, id)
}

func (b *LocalBackend) ListTasks(ctx context.Context) ([]task.Task, error) {
	b.delay()
	return b.tasks.QueryAll(ctx)
}

func (b *LocalBackend) CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	b.delay()
	return b.tasks.Create(ctx, nt)
}

func (b *LocalBackend) UpdateTask(ctx context.Context, id string, up task.UpdateTask) (task.Task, error) {
	b.delay()
	return b.tasks.Update(ctx, id, up)
}

func (b *LocalBackend) DeleteTask(ctx context.Context, id string) error {
	b.delay()
	return b.tasks.Delete(ctx, id)
}

func (b *LocalBackend) ListNotes(ctx context.Context) ([]note.Note, error) {
	b.delay()
	return b.notes.QueryAll(ctx)
}

func (b *LocalBackend) CreateNote(ctx context.Context, nn note.NewNote) (note.Note, error) {
	b.delay()
	return b.notes.Create(ctx, nn)
}

func (b *LocalBackend) DeleteNote(ctx context.Context, id string) error {
	b.delay()
	return b.notes.Delete(ctx, id)
}
