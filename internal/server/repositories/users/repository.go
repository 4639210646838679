// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository is the credential store for users. Create and Update report
// common.ErrDuplicateIdentity when the name is taken; lookups report
// common.ErrorNotFound for a missing row.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}
