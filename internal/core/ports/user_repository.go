package ports

import (
	"context"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// UserRepository defines persistence operations for users. Lookups return
// (nil, nil) when no user matches; callers decide whether absence is an error.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailAndPassword matches the email case-insensitively and the
	// password exactly.
	FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Insert persists a new user, assigning a fresh id when none is set.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
