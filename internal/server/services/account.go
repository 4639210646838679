// Package services implements the userkeeper use cases on top of the
// repositories: account registration and login, user administration, rights
// and profile files.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// AuthResult is returned by Register and Login. User is always redacted.
type AuthResult struct {
	User  models.UserView
	Token string
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenIssuer
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates an account and signs a session token for it.
//
// The name pre-check is a fast path only; the store's unique constraint is
// what guarantees that two concurrent registrations cannot both succeed.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateIdentity
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Age:          in.Age,
		Gender:       in.Gender,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

// Login checks the credentials and signs a session token.
func (s *AccountService) Login(ctx context.Context, name, password string) (*AuthResult, error) {
	if name == "" || password == "" {
		return nil, invalid("name and password are required")
	}

	user, err := s.repomanager.Users(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrCredentialMismatch
	}

	return s.issue(user)
}

// Identify re-resolves a token subject. It reports common.ErrIdentityNotFound
// when the user no longer exists.
func (s *AccountService) Identify(ctx context.Context, userID string) (*models.UserView, error) {
	if !validID(userID) {
		return nil, common.ErrIdentityNotFound
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	v := user.View()
	return &v, nil
}

func (s *AccountService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.Name, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &AuthResult{User: user.View(), Token: token}, nil
}
