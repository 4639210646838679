package rest

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
)

type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, name, password string) (*services.AuthResult, error)
	Identify(ctx context.Context, userID string) (*models.UserView, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.UserView, error)
	Get(ctx context.Context, id string) (*models.UserView, error)
	Create(ctx context.Context, in services.RegisterInput) (*models.UserView, error)
	Update(ctx context.Context, id string, in services.ProfileInput) (*models.UserView, error)
	Delete(ctx context.Context, id string) (*models.UserView, error)
}

type RightService interface {
	Create(ctx context.Context, name, userID string) (*models.Right, error)
	List(ctx context.Context) ([]*models.RightWithUser, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Right, error)
}

type FileService interface {
	Upload(ctx context.Context, userID string, up services.Upload) (*models.File, error)
	List(ctx context.Context) ([]*models.File, error)
	DownloadURL(ctx context.Context, id string) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}
