package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService is the administrative CRUD over accounts. Every result is a
// redacted view.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: hasher}
}

// validID reports whether id can name a stored row. Store ids are UUIDs, so
// anything else is simply not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *UserService) List(ctx context.Context) ([]models.UserView, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return models.Views(users), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.UserView, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := user.View()
	return &v, nil
}

// Create adds an account on behalf of an authenticated caller. No token is
// issued.
func (s *UserService) Create(ctx context.Context, in RegisterInput) (*models.UserView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Name:         in.Name,
		Age:          in.Age,
		Gender:       in.Gender,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	v := user.View()
	return &v, nil
}

// Update changes name, age and gender. The password hash is never touched.
func (s *UserService) Update(ctx context.Context, id string, in ProfileInput) (*models.UserView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	user, err := s.repomanager.Users(s.db).Update(ctx, &models.User{
		ID:     id,
		Name:   in.Name,
		Age:    in.Age,
		Gender: in.Gender,
	})
	if err != nil {
		return nil, err
	}
	v := user.View()
	return &v, nil
}

// Delete removes the account; its rights and files go with it.
func (s *UserService) Delete(ctx context.Context, id string) (*models.UserView, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	v := user.View()
	return &v, nil
}
