package blobdb

import (
	"context"

	"github.com/unitrack/unitrack/core/academy"
)

type academyRepository struct {
	db *DB
}

var _ academy.Repository = (*academyRepository)(nil) // interface compliance check

func NewAcademyRepository(db *DB) academy.Repository {
	return &academyRepository{db: db}
}

func (repo *academyRepository) QueryAllClasses(ctx context.Context) ([]academy.ClassRoom, error) {
	classes, found, err := loadCollection[academy.ClassRoom](ctx, repo.db.store, keyClasses)
	if err != nil {
		return nil, err
	}
	if !found {
		classes = SeedClasses()
		if err = saveCollection(ctx, repo.db.store, keyClasses, classes); err != nil {
			return nil, err
		}
	}
	return classes, nil
}

func (repo *academyRepository) QueryAllTeachers(ctx context.Context) ([]academy.Teacher, error) {
	teachers, found, err := loadCollection[academy.Teacher](ctx, repo.db.store, keyTeachers)
	if err != nil {
		return nil, err
	}
	if !found {
		teachers = SeedTeachers()
		if err = saveCollection(ctx, repo.db.store, keyTeachers, teachers); err != nil {
			return nil, err
		}
	}
	return teachers, nil
}

func (repo *academyRepository) QueryAllNotices(ctx context.Context) ([]academy.Notice, error) {
	notices, found, err := loadCollection[academy.Notice](ctx, repo.db.store, keyNotices)
	if err != nil {
		return nil, err
	}
	if !found {
		notices = SeedNotices()
		if err = saveCollection(ctx, repo.db.store, keyNotices, notices); err != nil {
			return nil, err
		}
	}
	return notices, nil
}
