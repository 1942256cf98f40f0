package blobdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/unitrack/unitrack/core/task"
)

type taskRepository struct {
	db *DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) load(ctx context.Context) ([]task.Task, error) {
	tasks, _, err := loadCollection[task.Task](ctx, repo.db.store, keyTasks)
	return tasks, err
}

func (repo *taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	return repo.load(ctx)
}

func (repo *taskRepository) QueryTasksByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	tasks, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []task.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (repo *taskRepository) GetTaskByID(ctx context.Context, id string) (task.Task, error) {
	tasks, err := repo.load(ctx)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	repo.db.tasksMu.Lock()
	defer repo.db.tasksMu.Unlock()

	tasks, err := repo.load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	t.ID = uuid.NewString()
	tasks = append(tasks, t) // tasks append at the tail
	if err = saveCollection(ctx, repo.db.store, keyTasks, tasks); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (repo *taskRepository) ReplaceTask(ctx context.Context, t task.Task) (task.Task, error) {
	repo.db.tasksMu.Lock()
	defer repo.db.tasksMu.Unlock()

	tasks, err := repo.load(ctx)
	if err != nil {
		return task.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			if err = saveCollection(ctx, repo.db.store, keyTasks, tasks); err != nil {
				return task.Task{}, err
			}
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) DeleteTasksByID(ctx context.Context, ids ...string) error {
	repo.db.tasksMu.Lock()
	defer repo.db.tasksMu.Unlock()

	tasks, err := repo.load(ctx)
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	return saveCollection(ctx, repo.db.store, keyTasks, kept)
}
