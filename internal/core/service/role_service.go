package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/core/domain"
	"github.com/miniiam/iam-service/internal/core/ports"
)

// RoleService implements read-only role listing.
type RoleService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, log: log}
}

// ListRoles returns all roles in store iteration order.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list roles")
		return nil, err
	}
	return roles, nil
}
