package auth

import (
	"context"

	appctx "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/domain"
)

// UserFilter narrows user listings.
type UserFilter struct {
	domain.ListFilter
	Role     appctx.Role
	IsActive *bool
}

// UserRepository defines user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, filter UserFilter) (domain.ListResult[*User], error)
}
