package dto

import (
	appctx "karobar/internal/core/context"
	"karobar/internal/domain/auth"
)

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     appctx.Role `json:"role" binding:"required"`
	Gender   string      `json:"gender,omitempty"`
}

// ToDomain converts request to the domain registration payload.
func (r *RegisterRequest) ToDomain() auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Gender:   r.Gender,
	}
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token *auth.Token `json:"token"`
	User  *auth.User  `json:"user"`
}

// ChangeRoleRequest changes a user's role.
type ChangeRoleRequest struct {
	Role appctx.Role `json:"role" binding:"required"`
}
