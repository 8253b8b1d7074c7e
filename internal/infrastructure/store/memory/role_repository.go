package memory

import (
	"context"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// RoleRepository is the in-memory implementation of ports.RoleRepository.
type RoleRepository struct {
	coll *Collection[domain.Role]
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{
		coll: NewCollection(
			Identity[domain.Role]{
				Get: func(r *domain.Role) string { return r.ID },
				Set: func(r *domain.Role, id string) { r.ID = id },
			},
			func(r *domain.Role) *domain.Role {
				clone := *r
				return &clone
			},
		),
	}
}

func (r *RoleRepository) FindByID(_ context.Context, id string) (*domain.Role, error) {
	return r.coll.FindByID(id), nil
}

func (r *RoleRepository) List(_ context.Context) ([]domain.Role, error) {
	stored := r.coll.List()
	roles := make([]domain.Role, 0, len(stored))
	for _, role := range stored {
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *RoleRepository) Insert(_ context.Context, role *domain.Role) (*domain.Role, error) {
	return r.coll.Insert(role), nil
}
