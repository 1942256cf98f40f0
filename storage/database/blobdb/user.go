package blobdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/unitrack/unitrack/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

// storedUser persists the password hash, which the API-facing User excludes
// from JSON.
type storedUser struct {
	user.User
	PasswordHash []byte `json:"password_hash,omitempty"`
}

func toStored(users []user.User) []storedUser {
	stored := make([]storedUser, len(users))
	for i, usr := range users {
		stored[i] = storedUser{User: usr, PasswordHash: usr.PasswordHash}
	}
	return stored
}

func fromStored(stored []storedUser) []user.User {
	users := make([]user.User, len(stored))
	for i, su := range stored {
		users[i] = su.User
		users[i].PasswordHash = su.PasswordHash
	}
	return users
}

func (repo *userRepository) load(ctx context.Context) ([]user.User, error) {
	stored, found, err := loadCollection[storedUser](ctx, repo.db.store, keyUsers)
	if err != nil {
		return nil, err
	}
	if !found {
		users, err := SeedUsers()
		if err != nil {
			return nil, err
		}
		if err = repo.save(ctx, users); err != nil {
			return nil, err
		}
		return users, nil
	}
	return fromStored(stored), nil
}

func (repo *userRepository) save(ctx context.Context, users []user.User) error {
	return saveCollection(ctx, repo.db.store, keyUsers, toStored(users))
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return repo.load(ctx)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	users, err := repo.load(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	users, err := repo.load(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.usersMu.Lock()
	defer repo.db.usersMu.Unlock()

	users, err := repo.load(ctx)
	if err != nil {
		return user.User{}, err
	}

	usr.ID = uuid.NewString()
	users = append(users, usr)
	if err = repo.save(ctx, users); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.usersMu.Lock()
	defer repo.db.usersMu.Unlock()

	users, err := repo.load(ctx)
	if err != nil {
		return user.User{}, err
	}
	for i := range users {
		if users[i].Email == usr.Email {
			usr.ID = users[i].ID
			usr.CreatedAt = users[i].CreatedAt
			usr.UpdatedAt = time.Now().UTC()
			users[i] = usr
			if err = repo.save(ctx, users); err != nil {
				return user.User{}, err
			}
			return usr, nil
		}
	}

	usr.ID = uuid.NewString()
	now := time.Now().UTC()
	usr.CreatedAt = now
	usr.UpdatedAt = now
	users = append(users, usr)
	if err = repo.save(ctx, users); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) SetLastLogin(ctx context.Context, id string, t time.Time) (user.User, error) {
	repo.db.usersMu.Lock()
	defer repo.db.usersMu.Unlock()

	users, err := repo.load(ctx)
	if err != nil {
		return user.User{}, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].LastLogin = t
			if err = repo.save(ctx, users); err != nil {
				return user.User{}, err
			}
			return users[i], nil
		}
	}
	return user.User{}, user.ErrNotFound
}
