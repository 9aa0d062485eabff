package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/userhub/accounts-api/docs"
	"github.com/userhub/accounts-api/internal/api/handler"
	"github.com/userhub/accounts-api/internal/api/middleware"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/service"
	"github.com/userhub/accounts-api/internal/infrastructure/config"
	"github.com/userhub/accounts-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTMaxAge)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.JWTMaxAge)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db)

	requireAuth := middleware.Auth(userRepo, cfg.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleUser, domain.RoleModerator, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, requireAuth, anyRole)

	// --- User routes ---
	usersGroup := e.Group("/api/users", requireAuth)
	usersGroup.GET("", userHandler.List, adminOnly)
	usersGroup.GET("/me", userHandler.GetMe, anyRole)
	usersGroup.PUT("/name", userHandler.UpdateName, anyRole)
	usersGroup.PUT("/role", userHandler.UpdateRole, adminOnly)
	usersGroup.PUT("/password", userHandler.UpdatePassword, anyRole)

	// --- Health probes and operational endpoints (no auth required) ---
	e.GET("/api/healthchecker", healthHandler.Healthchecker)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
