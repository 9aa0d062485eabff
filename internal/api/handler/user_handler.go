package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

// UserHandler implements profile reads and updates for authenticated users.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the authenticated user's own record.
//
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  errorResponse
// @Security     token
// @Router       /api/users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userCreated(user))
}

// List returns one page of accounts, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 50)"
// @Success      200    {object}  userListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Security     token
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	users, err := h.userService.List(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{
		Status:  "success",
		Users:   filterUsers(users),
		Results: len(users),
	})
}

// UpdateName changes the authenticated user's display name.
//
// @Summary      Update display name
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateNameRequest  true  "New display name"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     token
// @Router       /api/users/name [put]
func (h *UserHandler) UpdateName(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateNameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.userService.UpdateName(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userCreated(updated))
}

// UpdateRole changes the authenticated user's role. The route is wired
// admin-only.
//
// @Summary      Update role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Security     token
// @Router       /api/users/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.userService.UpdateRole(c.Request().Context(), user.ID, domain.Role(req.Role))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, userCreated(updated))
}

// UpdatePassword re-verifies the current password before storing the new one.
//
// @Summary      Update password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Old and new passwords"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     token
// @Router       /api/users/password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.userService.UpdatePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		if err == domain.ErrWrongCredentials {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, userCreated(updated))
}
