// Package rights persists named rights tagged to users.
package rights

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository stores rights. Create reports common.ErrIdentityNotFound when
// the referenced user does not exist.
type Repository interface {
	Create(ctx context.Context, right *models.Right) (*models.Right, error)
	ListWithUsers(ctx context.Context) ([]*models.RightWithUser, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Right, error)
}
