package handler

import (
	"time"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name            string `json:"name"            validate:"required,max=100"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6,max=64"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type listUsersQuery struct {
	Page  int `query:"page"  validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

type updateNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin moderator user"`
}

type updatePasswordRequest struct {
	OldPassword        string `json:"oldPassword"        validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required,min=6,max=64"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

// --- Response types ---

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes, and so the password hash can never leak through serialization.

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Photo     string    `json:"photo"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type userData struct {
	User userResponse `json:"user"`
}

type userEnvelope struct {
	Status string   `json:"status"`
	Data   userData `json:"data"`
}

type loginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type userListResponse struct {
	Status  string         `json:"status"`
	Users   []userResponse `json:"users"`
	Results int            `json:"results"`
}

func filterUser(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Photo:     u.Photo,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func filterUsers(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, filterUser(&users[i]))
	}
	return out
}

func userCreated(u *domain.User) userEnvelope {
	return userEnvelope{Status: "success", Data: userData{User: filterUser(u)}}
}
