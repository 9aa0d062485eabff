package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/auth"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

// TokenCookieName is the cookie the login flow issues the session token under.
const TokenCookieName = "token"

// Auth resolves the session token on an incoming request to a full user
// record and injects it into the request. The token is taken from the session
// cookie when present, otherwise from the Authorization bearer header.
//
// Missing, malformed, expired, and orphaned tokens all produce the same 401.
// A store failure is surfaced as a 500 so callers can tell "credentials bad"
// from "store unreachable".
func Auth(users ports.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	secret := []byte(jwtSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}

			subject, err := auth.DecodeToken(token, secret)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID.String())
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Account deleted after the token was issued.
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return fmt.Errorf("resolve user: %w", err)
			}

			c.Set("user", user)
			c.SetRequest(c.Request().WithContext(auth.ContextWithUser(c.Request().Context(), user)))

			return next(c)
		}
	}
}

// tokenFromRequest locates the candidate token: session cookie first, then
// the Authorization header.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
