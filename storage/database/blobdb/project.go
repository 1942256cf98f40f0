package blobdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/unitrack/unitrack/core/project"
)

type projectRepository struct {
	db *DB
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db}
}

// load returns the stored collection, seeding the demo data set on first
// access (or after a corrupt blob is dropped).
func (repo *projectRepository) load(ctx context.Context) ([]project.Project, error) {
	projects, found, err := loadCollection[project.Project](ctx, repo.db.store, keyProjects)
	if err != nil {
		return nil, err
	}
	if !found {
		projects = SeedProjects()
		if err = saveCollection(ctx, repo.db.store, keyProjects, projects); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (repo *projectRepository) QueryAllProjects(ctx context.Context) ([]project.Project, error) {
	return repo.load(ctx)
}

func (repo *projectRepository) GetProjectByID(ctx context.Context, id string) (project.Project, error) {
	projects, err := repo.load(ctx)
	if err != nil {
		return project.Project{}, err
	}
	for _, prj := range projects {
		if prj.ID == id {
			return prj, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) CreateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	repo.db.projectsMu.Lock()
	defer repo.db.projectsMu.Unlock()

	projects, err := repo.load(ctx)
	if err != nil {
		return project.Project{}, err
	}

	prj.ID = uuid.NewString()
	// new projects go to the head: most-recent-first display order
	projects = append([]project.Project{prj}, projects...)
	if err = saveCollection(ctx, repo.db.store, keyProjects, projects); err != nil {
		return project.Project{}, err
	}
	return prj, nil
}

func (repo *projectRepository) ReplaceProject(ctx context.Context, prj project.Project) (project.Project, error) {
	repo.db.projectsMu.Lock()
	defer repo.db.projectsMu.Unlock()

	projects, err := repo.load(ctx)
	if err != nil {
		return project.Project{}, err
	}
	for i := range projects {
		if projects[i].ID == prj.ID {
			projects[i] = prj
			if err = saveCollection(ctx, repo.db.store, keyProjects, projects); err != nil {
				return project.Project{}, err
			}
			return prj, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) DeleteProjectsByID(ctx context.Context, ids ...string) error {
	repo.db.projectsMu.Lock()
	defer repo.db.projectsMu.Unlock()

	projects, err := repo.load(ctx)
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := projects[:0]
	for _, prj := range projects {
		if !drop[prj.ID] {
			kept = append(kept, prj)
		}
	}
	return saveCollection(ctx, repo.db.store, keyProjects, kept)
}

func (repo *projectRepository) FilterProjects(ctx context.Context, filter project.QueryFilter) ([]project.Project, error) {
	projects, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return projects, nil
	}
	var filtered []project.Project
	for _, prj := range projects {
		if filter.Matches(prj) {
			filtered = append(filtered, prj)
		}
	}
	return filtered, nil
}
