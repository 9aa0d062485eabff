package service

import (
	"context"

	"github.com/userhub/accounts-api/internal/auth"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// UserService implements profile reads and updates on existing accounts.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns one page of accounts, newest first.
func (s *UserService) List(ctx context.Context, page, limit int) ([]domain.User, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.repo.List(ctx, page, limit)
}

func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*domain.User, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.UpdateName(ctx, userID, name)
}

func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// UpdatePassword re-verifies the current password before storing a fresh hash
// of the new one.
func (s *UserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return nil, domain.ErrWrongCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdatePassword(ctx, userID, hash)
}
