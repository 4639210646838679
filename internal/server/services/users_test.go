package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewUserService(nil, repomanager.NewInMemoryRepositoryManager(store), auth.NewPasswordHasher(bcrypt.MinCost)), store
}

func TestUserService_CRUD(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, RegisterInput{Name: "alice", Age: intPtr(30), Gender: "f", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Name)

	stored, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	hash := stored.PasswordHash
	assert.True(t, auth.NewPasswordHasher(bcrypt.MinCost).Verify("pw", hash))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	upd, err := svc.Update(ctx, created.ID, ProfileInput{Name: "alicia", Age: intPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, "alicia", upd.Name)
	assert.Equal(t, 31, *upd.Age)

	stored, err = store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, stored.PasswordHash, "update must not touch the hash")

	del, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", del.Name)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_Errors(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Delete(ctx, uuid.NewString())
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Update(ctx, "garbage", ProfileInput{Name: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Update(ctx, uuid.NewString(), ProfileInput{})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.Create(ctx, RegisterInput{Name: "x"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.Update(ctx, uuid.NewString(), ProfileInput{Name: "x", Age: intPtr(1<<32 + 30)})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Create(ctx, RegisterInput{Name: "bob", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, RegisterInput{Name: "bob", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestUserService_ListFailure(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		ListFn: func(context.Context) ([]*models.User, error) { return nil, errors.New("boom") },
	}}
	svc := NewUserService(nil, rm, auth.NewPasswordHasher(bcrypt.MinCost))

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
