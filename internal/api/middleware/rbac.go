package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/domain"
)

// RBAC admits the request only when the resolved user's role is in the
// allowed set. It must run after Auth; a request that reaches it without a
// resolved user is rejected as unauthenticated, not forbidden.
//
// The allowed set is fixed at wiring time. An empty set would guard a route
// nobody can reach, so it panics during startup rather than at request time.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	if len(allowedRoles) == 0 {
		panic("middleware: RBAC requires at least one allowed role")
	}
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AccessDeniedTotal.Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
