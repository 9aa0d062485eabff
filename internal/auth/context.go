package auth

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

type userContextKey struct{}

// ContextWithUser attaches the resolved user to the request context for the
// remainder of that request's processing.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the resolved user previously attached by the auth
// middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(userContextKey{}).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
