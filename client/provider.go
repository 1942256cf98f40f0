package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
)

// Provider holds the session cache and the optimistic mutation contract:
//
//   - Refresh fetches all three collections concurrently; the cache becomes
//     ready only when every fetch succeeds, otherwise it stays empty with the
//     error recorded (all-or-nothing readiness).
//   - Updates and deletes are optimistic: the cache changes first, then the
//     backend is called. A backend failure does NOT roll the cache back; the
//     error is returned so the caller can decide to revert, and a
//     failed-save flag is raised for the UI.
//   - Creates are not optimistic: the record enters the cache only after the
//     backend confirms it with a server-assigned id.
type Provider struct {
	backend Backend
	logger  core.Logger

	mu         sync.RWMutex
	projects   []project.Project
	tasks      []task.Task
	notes      []note.Note
	ready      bool
	loadErr    error
	saveFailed bool
}

func NewProvider(backend Backend, logger core.Logger) *Provider {
	return &Provider{backend: backend, logger: logger}
}

// Refresh loads all collections from the backend. Any failure discards every
// result, including the ones that succeeded.
func (p *Provider) Refresh(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		projects []project.Project
		tasks    []task.Task
		notes    []note.Note
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		projects, errs[0] = p.backend.ListProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		tasks, errs[1] = p.backend.ListTasks(ctx)
	}()
	go func() {
		defer wg.Done()
		notes, errs[2] = p.backend.ListNotes(ctx)
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, err := range errs {
		if err != nil {
			p.ready = false
			p.loadErr = err
			p.projects, p.tasks, p.notes = nil, nil, nil
			return err
		}
	}
	p.projects = projects
	p.tasks = tasks
	p.notes = notes
	p.ready = true
	p.loadErr = nil
	p.saveFailed = false
	return nil
}

func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

func (p *Provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadErr
}

// SaveFailed reports whether any optimistic mutation failed to persist since
// the last refresh.
func (p *Provider) SaveFailed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.saveFailed
}

func (p *Provider) Projects() []project.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]project.Project, len(p.projects))
	copy(out, p.projects)
	return out
}

func (p *Provider) Tasks() []task.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]task.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

func (p *Provider) Notes() []note.Note {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]note.Note, len(p.notes))
	copy(out, p.notes)
	return out
}

// Derived read views: pure filters over the cached collection.

func (p *Provider) ProjectsByDepartment(dept string) []project.Project {
	return p.filterProjects(func(prj project.Project) bool { return prj.Department == dept })
}

func (p *Provider) ProjectsByStudent(studentID string) []project.Project {
	return p.filterProjects(func(prj project.Project) bool { return prj.StudentID == studentID })
}

func (p *Provider) ProjectsBySupervisor(supervisorID string) []project.Project {
	return p.filterProjects(func(prj project.Project) bool { return prj.SupervisorID == supervisorID })
}

func (p *Provider) filterProjects(keep func(project.Project) bool) []project.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []project.Project
	for _, prj := range p.projects {
		if keep(prj) {
			out = append(out, prj)
		}
	}
	return out
}

// Project mutations

func (p *Provider) AddProject(ctx context.Context, np project.NewProject) (project.Project, error) {
	prj, err := p.backend.CreateProject(ctx, np)
	if err != nil {
		return project.Project{}, err
	}
	p.mu.Lock()
	p.projects = append([]project.Project{prj}, p.projects...)
	p.mu.Unlock()
	return prj, nil
}

func (p *Provider) UpdateProject(ctx context.Context, id string, up project.UpdateProject) (project.Project, error) {
	// optimistic: patch the cache before the backend call
	p.mu.Lock()
	var cached project.Project
	for i := range p.projects {
		if p.projects[i].ID == id {
			up.Apply(&p.projects[i])
			cached = p.projects[i]
			break
		}
	}
	p.mu.Unlock()

	prj, err := p.backend.UpdateProject(ctx, id, up)
	if err != nil {
		p.failSave("project", id, err)
		return cached, err
	}

	// reconcile server-side fields (timestamps) back into the cache
	p.mu.Lock()
	for i := range p.projects {
		if p.projects[i].ID == id {
			p.projects[i] = prj
			break
		}
	}
	p.mu.Unlock()
	return prj, nil
}

func (p *Provider) DeleteProject(ctx context.Context, id string) {
	p.mu.Lock()
	kept := p.projects[:0]
	for _, prj := range p.projects {
		if prj.ID != id {
			kept = append(kept, prj)
		}
	}
	p.projects = kept
	p.mu.Unlock()

	if err := p.backend.DeleteProject(ctx, id); err != nil {
		p.logger.Error(fmt.Sprintf("failed to delete project %s: %v", id, err), err)
	}
}

// Task mutations

func (p *Provider) AddTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	t, err := p.backend.CreateTask(ctx, nt)
	if err != nil {
		return task.Task{}, err
	}
	p.mu.Lock()
	p.tasks = append(p.tasks, t)
	p.mu.Unlock()
	return t, nil
}

func (p *Provider) UpdateTask(ctx context.Context, id string, up task.UpdateTask) (task.Task, error) {
	p.mu.Lock()
	var cached task.Task
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			up.Apply(&p.tasks[i])
			cached = p.tasks[i]
			break
		}
	}
	p.mu.Unlock()

	t, err := p.backend.UpdateTask(ctx, id, up)
	if err != nil {
		p.failSave("task", id, err)
		return cached, err
	}

	p.mu.Lock()
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks[i] = t
			break
		}
	}
	p.mu.Unlock()
	return t, nil
}

func (p *Provider) DeleteTask(ctx context.Context, id string) {
	p.mu.Lock()
	kept := p.tasks[:0]
	for _, t := range p.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	p.tasks = kept
	p.mu.Unlock()

	if err := p.backend.DeleteTask(ctx, id); err != nil {
		p.logger.Error(fmt.Sprintf("failed to delete task %s: %v", id, err), err)
	}
}

// Note mutations

func (p *Provider) AddNote(ctx context.Context, nn note.NewNote) (note.Note, error) {
	n, err := p.backend.CreateNote(ctx, nn)
	if err != nil {
		return note.Note{}, err
	}
	p.mu.Lock()
	p.notes = append(p.notes, n)
	p.mu.Unlock()
	return n, nil
}

func (p *Provider) DeleteNote(ctx context.Context, id string) {
	p.mu.Lock()
	kept := p.notes[:0]
	for _, n := range p.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	p.notes = kept
	p.mu.Unlock()

	if err := p.backend.DeleteNote(ctx, id); err != nil {
		p.logger.Error(fmt.Sprintf("failed to delete note %s: %v", id, err), err)
	}
}

// failSave records the failed mutation without touching the optimistic cache
// change; reverting is the caller's call.
func (p *Provider) failSave(kind, id string, err error) {
	p.mu.Lock()
	p.saveFailed = true
	p.mu.Unlock()
	p.logger.Error(fmt.Sprintf("failed to save %s %s: %v", kind, id, err), err)
}
