// Package blobdb implements the domain repositories over a blob.Store.
// Every call re-reads its collection from the store, mutates it and saves the
// whole array back; there is no in-process cache. Writers to the same
// collection are serialized with an in-process mutex, so the only remaining
// last-writer-wins window is across processes sharing an external store.
package blobdb

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/unitrack/unitrack/storage/blob"
)

// Collection keys; one JSON array per key.
const (
	keyProjects = "projects"
	keyTasks    = "tasks"
	keyNotes    = "notes"
	keyUsers    = "users"
	keyClasses  = "classes"
	keyTeachers = "teachers"
	keyNotices  = "notices"
)

type DB struct {
	store blob.Store

	projectsMu sync.Mutex
	tasksMu    sync.Mutex
	notesMu    sync.Mutex
	usersMu    sync.Mutex
}

func Open(store blob.Store) *DB {
	return &DB{store: store}
}

// loadCollection reads and decodes a collection. A missing key or a corrupt
// payload both report found=false: storage corruption fails closed (the
// collection is reseeded or treated as empty) instead of crashing the app.
func loadCollection[T any](ctx context.Context, store blob.Store, key string) ([]T, bool, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		if err == blob.ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, nil
	}
	return records, true, nil
}

func saveCollection[T any](ctx context.Context, store blob.Store, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, data)
}
