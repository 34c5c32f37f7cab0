// Package auth provides authentication and role assignment.
package auth

import (
	"time"

	"karobar/internal/core/apperror"
	appctx "karobar/internal/core/context"
	"karobar/internal/core/entity"
)

// User is an account that can sign in. Each user holds exactly one role.
type User struct {
	entity.BaseEntity
	Name         string      `db:"name" json:"name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         appctx.Role `db:"role" json:"role"`
	Gender       string      `db:"gender" json:"gender,omitempty"`
	IsActive     bool        `db:"is_active" json:"isActive"`
	LastLoginAt  *time.Time  `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// NewUser creates a user with a generated ID.
func NewUser(name, email, passwordHash string, role appctx.Role) *User {
	return &User{
		BaseEntity:   entity.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// CanLogin reports whether the account is allowed to sign in.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is deactivated")
	}
	return nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     appctx.Role `json:"role"`
	Gender   string      `json:"gender,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}
