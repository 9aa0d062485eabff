package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

type UserService interface {
	List(ctx context.Context, page, limit int) ([]domain.User, error)
	UpdateName(ctx context.Context, userID, name string) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error)
}
