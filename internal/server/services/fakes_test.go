package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/rights"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// fakeUsersRepo delegates to optional function fields; unset ones panic.
type fakeUsersRepo struct {
	CreateFn    func(ctx context.Context, u *models.User) (*models.User, error)
	GetByNameFn func(ctx context.Context, name string) (*models.User, error)
	GetByIDFn   func(ctx context.Context, id string) (*models.User, error)
	ListFn      func(ctx context.Context) ([]*models.User, error)
	UpdateFn    func(ctx context.Context, u *models.User) (*models.User, error)
	DeleteFn    func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return f.CreateFn(ctx, u)
}
func (f *fakeUsersRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	return f.GetByNameFn(ctx, name)
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) { return f.ListFn(ctx) }
func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	return f.UpdateFn(ctx, u)
}
func (f *fakeUsersRepo) Delete(ctx context.Context, id string) (*models.User, error) {
	return f.DeleteFn(ctx, id)
}

type fakeRightsRepo struct {
	CreateFn        func(ctx context.Context, r *models.Right) (*models.Right, error)
	ListWithUsersFn func(ctx context.Context) ([]*models.RightWithUser, error)
	ListForUserFn   func(ctx context.Context, userID string) ([]*models.Right, error)
}

func (f *fakeRightsRepo) Create(ctx context.Context, r *models.Right) (*models.Right, error) {
	return f.CreateFn(ctx, r)
}
func (f *fakeRightsRepo) ListWithUsers(ctx context.Context) ([]*models.RightWithUser, error) {
	return f.ListWithUsersFn(ctx)
}
func (f *fakeRightsRepo) ListForUser(ctx context.Context, userID string) ([]*models.Right, error) {
	return f.ListForUserFn(ctx, userID)
}

type fakeFilesRepo struct {
	CreateFn  func(ctx context.Context, f *models.File) (*models.File, error)
	ListFn    func(ctx context.Context) ([]*models.File, error)
	GetByIDFn func(ctx context.Context, id string) (*models.File, error)
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	return f.CreateFn(ctx, file)
}
func (f *fakeFilesRepo) List(ctx context.Context) ([]*models.File, error) { return f.ListFn(ctx) }
func (f *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRightsRepo
	f *fakeFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Rights(dbx.DBTX) rights.Repository            { return m.r }
func (m *fakeRepoManager) Files(dbx.DBTX) files.Repository              { return m.f }
