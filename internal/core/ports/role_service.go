package ports

import (
	"context"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// RoleService defines the read-only role operations.
type RoleService interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
}
