package service

import (
	"context"
	"testing"
	"time"

	"github.com/userhub/accounts-api/internal/auth"
	"github.com/userhub/accounts-api/internal/core/domain"
)

func registerTestUser(t *testing.T, repo *stubUserRepo, email, password string) *domain.User {
	t.Helper()
	svc := NewAuthService(repo, "secret", time.Hour)
	user, err := svc.Register(context.Background(), "tester", email, password)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestUserService_UpdateName(t *testing.T) {
	repo := newStubUserRepo()
	user := registerTestUser(t, repo, "a@example.com", "pass123")
	svc := NewUserService(repo)

	updated, err := svc.UpdateName(context.Background(), user.ID, "new name")
	if err != nil {
		t.Fatalf("UpdateName returned error: %v", err)
	}
	if updated.Name != "new name" {
		t.Fatalf("name not updated: %q", updated.Name)
	}

	if _, err := svc.UpdateName(context.Background(), user.ID, ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := newStubUserRepo()
	user := registerTestUser(t, repo, "b@example.com", "pass123")
	svc := NewUserService(repo)

	updated, err := svc.UpdateRole(context.Background(), user.ID, domain.RoleModerator)
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if updated.Role != domain.RoleModerator {
		t.Fatalf("role not updated: %s", updated.Role)
	}

	if _, err := svc.UpdateRole(context.Background(), user.ID, domain.Role("superuser")); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	user := registerTestUser(t, repo, "c@example.com", "oldpass1")
	svc := NewUserService(repo)

	updated, err := svc.UpdatePassword(context.Background(), user.ID, "oldpass1", "newpass1")
	if err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if !auth.VerifyPassword("newpass1", updated.PasswordHash) {
		t.Fatalf("new password does not verify against stored hash")
	}
	if auth.VerifyPassword("oldpass1", updated.PasswordHash) {
		t.Fatalf("old password still verifies")
	}
}

func TestUserService_UpdatePassword_WrongOld(t *testing.T) {
	repo := newStubUserRepo()
	user := registerTestUser(t, repo, "d@example.com", "oldpass1")
	svc := NewUserService(repo)

	if _, err := svc.UpdatePassword(context.Background(), user.ID, "not-the-password", "newpass1"); err != domain.ErrWrongCredentials {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}
