package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrack/unitrack/core/user"
	"github.com/unitrack/unitrack/storage/blob"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

func setup(t *testing.T) *user.Service {
	t.Helper()
	db := blobdb.Open(blob.NewMemoryStore())
	return user.NewService(blobdb.NewUserRepository(db))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	usr, err := svc.Create(ctx, user.NewUser{
		Name:     "Grace Hopper",
		Email:    "grace@uni.edu",
		Role:     user.RoleSupervisor,
		Password: "very-long-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.True(t, usr.IsSupervisor())
	assert.NoError(t, usr.CheckPassword("very-long-password"))

	// duplicate email is rejected
	_, err = svc.Create(ctx, user.NewUser{
		Name:     "Grace Clone",
		Email:    "grace@uni.edu",
		Role:     user.RoleStudent,
		Password: "whatever-pass",
	})
	assert.Equal(t, user.ErrEmailExists, err)

	// seeded accounts count as taken too
	_, err = svc.Create(ctx, user.NewUser{
		Name:     "Fake Admin",
		Email:    "admin@uni.edu",
		Role:     user.RoleAdmin,
		Password: "whatever-pass",
	})
	assert.Equal(t, user.ErrEmailExists, err)
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	// seeded demo account
	usr, err := svc.Authenticate(ctx, "admin@uni.edu", blobdb.DemoPassword)
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())
	assert.False(t, usr.LastLogin.IsZero())

	// wrong password and unknown email both come back as not-found
	_, err = svc.Authenticate(ctx, "admin@uni.edu", "wrong")
	assert.Equal(t, user.ErrNotFound, err)
	_, err = svc.Authenticate(ctx, "ghost@uni.edu", blobdb.DemoPassword)
	assert.Equal(t, user.ErrNotFound, err)
}
