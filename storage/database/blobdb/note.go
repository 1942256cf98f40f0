package blobdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/unitrack/unitrack/core/note"
)

type noteRepository struct {
	db *DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) load(ctx context.Context) ([]note.Note, error) {
	notes, _, err := loadCollection[note.Note](ctx, repo.db.store, keyNotes)
	return notes, err
}

func (repo *noteRepository) QueryAllNotes(ctx context.Context) ([]note.Note, error) {
	return repo.load(ctx)
}

func (repo *noteRepository) GetNoteByID(ctx context.Context, id string) (note.Note, error) {
	notes, err := repo.load(ctx)
	if err != nil {
		return note.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	repo.db.notesMu.Lock()
	defer repo.db.notesMu.Unlock()

	notes, err := repo.load(ctx)
	if err != nil {
		return note.Note{}, err
	}

	n.ID = uuid.NewString()
	notes = append(notes, n) // notes append at the tail
	if err = saveCollection(ctx, repo.db.store, keyNotes, notes); err != nil {
		return note.Note{}, err
	}
	return n, nil
}

func (repo *noteRepository) DeleteNotesByID(ctx context.Context, ids ...string) error {
	repo.db.notesMu.Lock()
	defer repo.db.notesMu.Unlock()

	notes, err := repo.load(ctx)
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := notes[:0]
	for _, n := range notes {
		if !drop[n.ID] {
			kept = append(kept, n)
		}
	}
	return saveCollection(ctx, repo.db.store, keyNotes, kept)
}
