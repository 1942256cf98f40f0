package task

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("task not found")

type (
	Repository interface {
		QueryAllTasks(ctx context.Context) ([]Task, error)
		QueryTasksByProject(ctx context.Context, projectID string) ([]Task, error)
		GetTaskByID(ctx context.Context, id string) (Task, error)
		// CreateTask assigns the id and appends at the tail of the collection.
		CreateTask(ctx context.Context, t Task) (Task, error)
		// ReplaceTask swaps the stored record with the same id; ErrNotFound
		// when no such record exists.
		ReplaceTask(ctx context.Context, t Task) (Task, error)
		// DeleteTasksByID removes matching records; missing ids are ignored.
		DeleteTasksByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nt NewTask) (Task, error) {
	status := nt.Status
	if status == "" {
		status = StatusPending
	}
	t := Task{
		ProjectID:    nt.ProjectID,
		Title:        nt.Title,
		Phase:        nt.Phase,
		AssignedTo:   nt.AssignedTo,
		AssignedToID: nt.AssignedToID,
		StartDate:    nt.StartDate,
		Deadline:     nt.Deadline,
		Status:       status,
	}
	return svc.repo.CreateTask(ctx, t)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Task, error) {
	return svc.repo.QueryAllTasks(ctx)
}

func (svc *Service) QueryByProject(ctx context.Context, projectID string) ([]Task, error) {
	return svc.repo.QueryTasksByProject(ctx, projectID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Task, error) {
	return svc.repo.GetTaskByID(ctx, id)
}

// Update merges the set patch fields over the stored record. Unlike projects,
// tasks carry no update timestamp; the stored fields stay verbatim unless
// patched. The completion timestamp is kept consistent with the status: set
// when the task moves to Completed, cleared when it moves away.
func (svc *Service) Update(ctx context.Context, id string, up UpdateTask) (Task, error) {
	t, err := svc.repo.GetTaskByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	up.Apply(&t)
	if up.Status != nil {
		if *up.Status == StatusCompleted {
			if t.EndDate == nil {
				now := time.Now().UTC()
				t.EndDate = &now
			}
		} else {
			t.EndDate = nil
		}
	}

	return svc.repo.ReplaceTask(ctx, t)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteTasksByID(ctx, ids...)
}
