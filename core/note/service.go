package note

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("note not found")

type (
	Repository interface {
		QueryAllNotes(ctx context.Context) ([]Note, error)
		GetNoteByID(ctx context.Context, id string) (Note, error)
		// CreateNote assigns the id and appends at the tail of the collection.
		CreateNote(ctx context.Context, n Note) (Note, error)
		// DeleteNotesByID removes matching records; missing ids are ignored.
		DeleteNotesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	n := Note{
		Text:      nn.Text,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Note, error) {
	return svc.repo.QueryAllNotes(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Note, error) {
	return svc.repo.GetNoteByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteNotesByID(ctx, ids...)
}
