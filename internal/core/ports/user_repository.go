package ports

import (
	"context"
	"time"

	"github.com/e-garderoba/backend/internal/core/domain"
)

// ListUsersFilter carries all query parameters for one list request.
// It is storage-agnostic: the repository translates it into its native
// query language. All filters AND together; Search alone ORs across the
// three name/email fields.
type ListUsersFilter struct {
	Search      string      // case-insensitive substring over first name, last name or email
	FirstName   string      // case-insensitive substring
	LastName    string      // case-insensitive substring
	Email       string      // case-insensitive substring
	Role        domain.Role // exact match
	CreatedFrom time.Time   // inclusive lower bound on created_at
	CreatedTo   time.Time   // inclusive upper bound on created_at
	Sort        string      // first-name | last-name | email | created-at; anything else = id order
	Order       string      // the literal "desc" for descending; anything else ascending
	Offset      int
	Limit       int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Insert stores a new user and returns it with the server-assigned id.
	// Returns domain.ErrEmailExists on an email collision.
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns one page of users matching filter and the total number
	// of matches before pagination is applied.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Replace overwrites the stored record with the same id.
	Replace(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
