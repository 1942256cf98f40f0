package client_test

import (
	"context"
	"errors"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrack/unitrack/client"
	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	emailsvc "github.com/unitrack/unitrack/services/email"
	logsvc "github.com/unitrack/unitrack/services/logger"
	"github.com/unitrack/unitrack/storage/blob"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

var errBackendDown = errors.New("backend down")

// flakyBackend wraps a real backend and fails the selected calls.
type flakyBackend struct {
	client.Backend
	failListNotes     bool
	failCreateProject bool
	failUpdateProject bool
	failDeleteProject bool
	failUpdateTask    bool
}

func (b *flakyBackend) ListNotes(ctx context.Context) ([]note.Note, error) {
	if b.failListNotes {
		return nil, errBackendDown
	}
	return b.Backend.ListNotes(ctx)
}

func (b *flakyBackend) CreateProject(ctx context.Context, np project.NewProject) (project.Project, error) {
	if b.failCreateProject {
		return project.Project{}, errBackendDown
	}
	return b.Backend.CreateProject(ctx, np)
}

func (b *flakyBackend) UpdateProject(ctx context.Context, id string, up project.UpdateProject) (project.Project, error) {
	if b.failUpdateProject {
		return project.Project{}, errBackendDown
	}
	return b.Backend.UpdateProject(ctx, id, up)
}

func (b *flakyBackend) DeleteProject(ctx context.Context, id string) error {
	if b.failDeleteProject {
		return errBackendDown
	}
	return b.Backend.DeleteProject(ctx, id)
}

func (b *flakyBackend) UpdateTask(ctx context.Context, id string, up task.UpdateTask) (task.Task, error) {
	if b.failUpdateTask {
		return task.Task{}, errBackendDown
	}
	return b.Backend.UpdateTask(ctx, id, up)
}

func setup(t *testing.T) (*client.Provider, *flakyBackend) {
	t.Helper()

	conf := &core.Config{
		AppName:          "Unitrack",
		DefaultFromEmail: mail.Address{Name: "Unitrack", Address: "noreply@localhost"},
	}
	db := blobdb.Open(blob.NewMemoryStore())
	logger := logsvc.NewNopLogger()

	prjSvc := project.NewService(
		blobdb.NewProjectRepository(db),
		blobdb.NewUserRepository(db),
		emailsvc.NewConsoleServiceMock(conf),
		logger,
	)
	tskSvc := task.NewService(blobdb.NewTaskRepository(db))
	noteSvc := note.NewService(blobdb.NewNoteRepository(db))

	backend := &flakyBackend{Backend: client.NewLocalBackend(prjSvc, tskSvc, noteSvc, 0)}
	return client.NewProvider(backend, logger), backend
}

func TestProvider_Refresh(t *testing.T) {
	ctx := context.Background()
	p, _ := setup(t)

	assert.False(t, p.Ready())

	require.NoError(t, p.Refresh(ctx))
	assert.True(t, p.Ready())
	assert.NoError(t, p.Err())
	assert.Len(t, p.Projects(), 2) // seeded p1/p2
	assert.Empty(t, p.Tasks())
	assert.Empty(t, p.Notes())
}

func TestProvider_Refresh_allOrNothing(t *testing.T) {
	ctx := context.Background()
	p, backend := setup(t)

	// one failing collection discards the two that succeeded
	backend.failListNotes = true
	err := p.Refresh(ctx)
	assert.Equal(t, errBackendDown, err)
	assert.False(t, p.Ready())
	assert.Equal(t, errBackendDown, p.Err())
	assert.Empty(t, p.Projects())
	assert.Empty(t, p.Tasks())

	// recovery on the next refresh
	backend.failListNotes = false
	require.NoError(t, p.Refresh(ctx))
	assert.True(t, p.Ready())
	assert.NoError(t, p.Err())
	assert.Len(t, p.Projects(), 2)
}

func TestProvider_AddProject_confirmBeforeInsert(t *testing.T) {
	ctx := context.Background()
	p, backend := setup(t)
	require.NoError(t, p.Refresh(ctx))

	// a failed create must leave the cache untouched
	backend.failCreateProject = true
	_, err := p.AddProject(ctx, project.NewProject{Title: "Ghost", DepartmentType: project.DeptTechnology})
	assert.Equal(t, errBackendDown, err)
	assert.Len(t, p.Projects(), 2)
	assert.False(t, p.SaveFailed())

	// a confirmed create enters at the head with the server-assigned id
	backend.failCreateProject = false
	prj, err := p.AddProject(ctx, project.NewProject{Title: "Real", DepartmentType: project.DeptTechnology})
	require.NoError(t, err)
	require.NotEmpty(t, prj.ID)

	projects := p.Projects()
	require.Len(t, projects, 3)
	assert.Equal(t, prj.ID, projects[0].ID)
}

func TestProvider_UpdateProject_optimisticNoRollback(t *testing.T) {
	ctx := context.Background()
	p, backend := setup(t)
	require.NoError(t, p.Refresh(ctx))
	title := "Optimistically Renamed"

	backend.failUpdateProject = true
	cached, err := p.UpdateProject(ctx, "p1", project.UpdateProject{Title: &title})
	assert.Equal(t, errBackendDown, err)

	// the cache keeps the optimistic change; no rollback
	assert.Equal(t, title, cached.Title)
	projects := p.ProjectsByStudent("u4")
	require.Len(t, projects, 1)
	assert.Equal(t, title, projects[0].Title)
	assert.True(t, p.SaveFailed())

	// the backend still has the old record
	require.NoError(t, p.Refresh(ctx))
	projects = p.ProjectsByStudent("u4")
	require.Len(t, projects, 1)
	assert.NotEqual(t, title, projects[0].Title)
}

func TestProvider_UpdateProject_reconcilesServerRecord(t *testing.T) {
	ctx := context.Background()
	p, _ := setup(t)
	require.NoError(t, p.Refresh(ctx))
	title := "Renamed For Real"

	before := p.Projects()[0]
	prj, err := p.UpdateProject(ctx, "p1", project.UpdateProject{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, prj.Title)
	assert.True(t, prj.UpdatedAt.After(before.UpdatedAt))
	assert.False(t, p.SaveFailed())

	// the cache holds the server copy, refreshed timestamp included
	cached := p.Projects()[0]
	assert.True(t, cached.UpdatedAt.Equal(prj.UpdatedAt))
}

func TestProvider_DeleteProject_optimistic(t *testing.T) {
	ctx := context.Background()
	p, backend := setup(t)
	require.NoError(t, p.Refresh(ctx))

	// the cache drops the record even when the backend call fails
	backend.failDeleteProject = true
	p.DeleteProject(ctx, "p1")
	assert.Len(t, p.Projects(), 1)

	// deleting an id that is not cached is a no-op
	p.DeleteProject(ctx, "never-existed")
	assert.Len(t, p.Projects(), 1)
}

func TestProvider_notes(t *testing.T) {
	ctx := context.Background()
	p, _ := setup(t)
	require.NoError(t, p.Refresh(ctx))

	n, err := p.AddNote(ctx, note.NewNote{Text: "check milestone 2"})
	require.NoError(t, err)
	require.Len(t, p.Notes(), 1)

	p.DeleteNote(ctx, n.ID)
	assert.Empty(t, p.Notes())
}

func TestProvider_derivedViews(t *testing.T) {
	ctx := context.Background()
	p, _ := setup(t)
	require.NoError(t, p.Refresh(ctx))

	assert.Len(t, p.ProjectsByDepartment("Computer Science"), 1)
	assert.Len(t, p.ProjectsByDepartment("Psychology"), 1)
	assert.Empty(t, p.ProjectsByDepartment("History"))
	assert.Len(t, p.ProjectsByStudent("u4"), 1)
	assert.Len(t, p.ProjectsBySupervisor("u3"), 1)
}
