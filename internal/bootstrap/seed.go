// Package bootstrap runs once at process start, outside the service layer,
// to load the initial roles and users into an empty store.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/core/domain"
	"github.com/miniiam/iam-service/internal/core/ports"
)

// Seed inserts two roles (Admin, User) and two users (TestUser, AdminUser)
// holding one role each. It is idempotent: when the store already contains
// users, the whole step is skipped.
func Seed(ctx context.Context, users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) error {
	existing, err := users.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("users", len(existing)).Msg("store not empty, skipping seed")
		return nil
	}

	adminRole, err := roles.Insert(ctx, &domain.Role{RoleName: "Admin"})
	if err != nil {
		return fmt.Errorf("seed: insert role: %w", err)
	}
	userRole, err := roles.Insert(ctx, &domain.Role{RoleName: "User"})
	if err != nil {
		return fmt.Errorf("seed: insert role: %w", err)
	}

	seedUsers := []*domain.User{
		{
			Name:     "TestUser",
			Email:    "testuser@example.com",
			Password: "123456",
			Roles:    []domain.Role{*userRole},
		},
		{
			Name:     "AdminUser",
			Email:    "admin@example.com",
			Password: "admin123",
			Roles:    []domain.Role{*adminRole},
		},
	}
	for _, u := range seedUsers {
		if _, err := users.Insert(ctx, u); err != nil {
			return fmt.Errorf("seed: insert user: %w", err)
		}
	}

	log.Info().Int("roles", 2).Int("users", len(seedUsers)).Msg("seed data loaded")
	return nil
}
