package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

type RightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRightService(db *sql.DB, m repomanager.RepositoryManager) *RightService {
	return &RightService{db: db, repomanager: m}
}

// Create tags the named right to userID. An unknown user is
// common.ErrIdentityNotFound.
func (s *RightService) Create(ctx context.Context, name, userID string) (*models.Right, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name is required")
	}
	if userID == "" {
		return nil, invalid("user_id is required")
	}
	if !validID(userID) {
		return nil, common.ErrIdentityNotFound
	}

	right, err := s.repomanager.Rights(s.db).Create(ctx, &models.Right{Name: name, UserID: userID})
	if err != nil {
		return nil, err
	}
	return right, nil
}

// List returns every right joined with its owner's id and name.
func (s *RightService) List(ctx context.Context) ([]*models.RightWithUser, error) {
	rights, err := s.repomanager.Rights(s.db).ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rights: %w", err)
	}
	return rights, nil
}

func (s *RightService) ListForUser(ctx context.Context, userID string) ([]*models.Right, error) {
	if !validID(userID) {
		return []*models.Right{}, nil
	}
	rights, err := s.repomanager.Rights(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rights: %w", err)
	}
	return rights, nil
}
