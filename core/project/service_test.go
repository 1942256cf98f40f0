package project_test

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	emailsvc "github.com/unitrack/unitrack/services/email"
	logsvc "github.com/unitrack/unitrack/services/logger"
	"github.com/unitrack/unitrack/storage/blob"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

func setup(t *testing.T) (*project.Service, *blobdb.DB) {
	t.Helper()
	emailsvc.ClearSentMessages()

	conf := &core.Config{
		AppName:          "Unitrack",
		DefaultFromEmail: mail.Address{Name: "Unitrack", Address: "noreply@localhost"},
	}
	db := blobdb.Open(blob.NewMemoryStore())
	svc := project.NewService(
		blobdb.NewProjectRepository(db),
		blobdb.NewUserRepository(db),
		emailsvc.NewConsoleServiceMock(conf),
		logsvc.NewNopLogger(),
	)
	return svc, db
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	prj, err := svc.Create(ctx, project.NewProject{
		Title:          "Smart Irrigation",
		DepartmentType: project.DeptTechnology,
		StudentID:      "u4",
	})
	require.NoError(t, err)
	require.NotEmpty(t, prj.ID)

	// defaults
	assert.Equal(t, project.StatusProposed, prj.Status)
	assert.NotNil(t, prj.Comments)
	assert.NotNil(t, prj.Tags)
	assert.False(t, prj.CreatedAt.IsZero())
	assert.Equal(t, prj.CreatedAt, prj.UpdatedAt)

	// milestones come from the department template, all pending, due dates
	// spaced two weeks apart with unique server-assigned ids
	require.Len(t, prj.Milestones, len(project.TechMilestoneTemplate))
	seen := make(map[string]bool)
	for i, m := range prj.Milestones {
		assert.Equal(t, project.TechMilestoneTemplate[i], m.Name)
		assert.Equal(t, project.MilestonePending, m.Status)
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
		if i > 0 {
			assert.Equal(t, 14*24*time.Hour, m.DueDate.Sub(prj.Milestones[i-1].DueDate))
		}
	}

	// social science projects get the six-chapter template
	prj, err = svc.Create(ctx, project.NewProject{
		Title:          "Field Study",
		DepartmentType: project.DeptSocialScience,
	})
	require.NoError(t, err)
	assert.Len(t, prj.Milestones, len(project.SocialMilestoneTemplate))

	// newest first
	projects, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Field Study", projects[0].Title)
	assert.Equal(t, "Smart Irrigation", projects[1].Title)
}

func TestService_Create_keepsProvidedStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	prj, err := svc.Create(ctx, project.NewProject{
		Title:          "Already Running",
		DepartmentType: project.DeptTechnology,
		Status:         project.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusInProgress, prj.Status)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	prj, err := svc.Create(ctx, project.NewProject{Title: "Patchable", DepartmentType: project.DeptTechnology})
	require.NoError(t, err)
	created := prj

	// an empty patch refreshes the update timestamp only
	time.Sleep(5 * time.Millisecond)
	prj, err = svc.Update(ctx, prj.ID, project.UpdateProject{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, prj.Title)
	assert.Equal(t, created.Status, prj.Status)
	assert.Equal(t, created.Milestones, prj.Milestones)
	assert.Equal(t, created.CreatedAt, prj.CreatedAt)
	assert.True(t, prj.UpdatedAt.After(created.UpdatedAt))

	// sequential patches merge; the template is never recomputed
	prj, err = svc.Update(ctx, prj.ID, project.UpdateProject{Progress: intPtr(40)})
	require.NoError(t, err)
	prj, err = svc.Update(ctx, prj.ID, project.UpdateProject{Abstract: strPtr("revised")})
	require.NoError(t, err)
	assert.Equal(t, 40, prj.Progress)
	assert.Equal(t, "revised", prj.Abstract)
	assert.Equal(t, created.Milestones, prj.Milestones)

	// the merged record is persisted
	got, err := svc.GetByID(ctx, prj.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, "revised", got.Abstract)
	assert.True(t, got.UpdatedAt.Equal(prj.UpdatedAt))
}

func TestService_Update_missing(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Update(ctx, "no-such-id", project.UpdateProject{})
	assert.Equal(t, project.ErrNotFound, err)
}

func TestService_Update_notifiesStudentOnReview(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s project.Status) *project.Status { return &s }

	// seeded p1 belongs to student u4 (john@uni.edu)
	_, err := svc.Update(ctx, "p1", project.UpdateProject{SupervisorFeedback: strPtr("Solid methodology.")})
	require.NoError(t, err)

	msgs := emailsvc.GetSentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []mail.Address{{Name: "John Doe", Address: "john@uni.edu"}}, msgs[0].To)
	assert.Contains(t, msgs[0].TextContent, "Solid methodology.")

	// a decision status also notifies
	_, err = svc.Update(ctx, "p1", project.UpdateProject{Status: statusPtr(project.StatusApproved)})
	require.NoError(t, err)
	assert.Len(t, emailsvc.GetSentMessages(), 2)

	// a plain progress bump does not
	prg := 80
	_, err = svc.Update(ctx, "p1", project.UpdateProject{Progress: &prg})
	require.NoError(t, err)
	assert.Len(t, emailsvc.GetSentMessages(), 2)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)

	// a task attached to p1 must survive the project delete (no cascade)
	tskSvc := task.NewService(blobdb.NewTaskRepository(db))
	tsk, err := tskSvc.Create(ctx, task.NewTask{ProjectID: "p1", Title: "orphan-to-be", Phase: task.PhasePlanning})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "p1"))
	require.NoError(t, svc.Delete(ctx, "p1")) // idempotent

	_, err = svc.GetByID(ctx, "p1")
	assert.Equal(t, project.ErrNotFound, err)

	got, err := tskSvc.GetByID(ctx, tsk.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProjectID) // dangling reference, by contract
}
