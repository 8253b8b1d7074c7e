package ports

import (
	"context"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// RoleRepository defines persistence operations for roles. FindByID returns
// (nil, nil) when no role matches.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	// List returns all roles in store iteration order (insertion order in
	// the reference store).
	List(ctx context.Context) ([]domain.Role, error)
	// Insert persists a new role, assigning a fresh id when none is set.
	Insert(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
