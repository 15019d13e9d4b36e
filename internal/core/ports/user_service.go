package ports

import (
	"context"
	"time"

	"github.com/e-garderoba/backend/internal/core/domain"
)

// CreateUserInput is the payload for creating an account.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      domain.Role
	Password  string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *domain.Role
}

// UserView is the public projection of a user record. It deliberately
// has no password hash field.
type UserView struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ListUsersResult is one page of users plus the pre-pagination total.
type ListUsersResult struct {
	Users []UserView
	Total int64
}

// UserService orchestrates the account lifecycle behind the HTTP layer.
type UserService interface {
	Create(ctx context.Context, actor domain.Principal, in CreateUserInput) (*UserView, error)
	List(ctx context.Context, actor domain.Principal, filter ListUsersFilter) (*ListUsersResult, error)
	Get(ctx context.Context, id int64) (*UserView, error)
	Update(ctx context.Context, actor domain.Principal, id int64, in UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, actor domain.Principal, id int64) error
}
