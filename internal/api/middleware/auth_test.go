package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/auth"
	"github.com/userhub/accounts-api/internal/core/domain"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) List(context.Context, int, int) ([]domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) UpdateName(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) UpdateRole(context.Context, string, domain.Role) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) UpdatePassword(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func signedToken(t *testing.T, subject string, maxAge time.Duration) string {
	t.Helper()
	token, err := auth.IssueToken(subject, []byte(testSecret), maxAge)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	e := echo.New()
	user := &domain.User{ID: uuid.NewString(), Name: "alice", Role: domain.RoleUser}
	repo := newStubUserRepo(user)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signedToken(t, user.ID, time.Hour)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		called = true
		got, ok := c.Get("user").(*domain.User)
		if !ok || got.ID != user.ID {
			t.Fatalf("user not injected into echo context")
		}
		if _, ok := auth.UserFromContext(c.Request().Context()); !ok {
			t.Fatalf("user not attached to request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	e := echo.New()
	user := &domain.User{ID: uuid.NewString(), Name: "bob", Role: domain.RoleAdmin}
	repo := newStubUserRepo(user)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, user.ID, time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	repo := newStubUserRepo()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	repo := newStubUserRepo()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	user := &domain.User{ID: uuid.NewString(), Role: domain.RoleUser}
	repo := newStubUserRepo(user)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, user.ID, -time.Second))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_UserDeleted(t *testing.T) {
	e := echo.New()
	repo := newStubUserRepo() // token subject does not exist anymore

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, uuid.NewString(), time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_StoreError(t *testing.T) {
	e := echo.New()
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, uuid.NewString(), time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(repo, testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	// A store failure must not be reported as a credentials problem.
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
