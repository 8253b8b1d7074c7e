package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/core/domain"
)

func TestRoleService_ListRoles_InsertionOrder(t *testing.T) {
	repo := newStubRoleRepo(
		domain.Role{ID: "role_admin", RoleName: "Admin"},
		domain.Role{ID: "role_user", RoleName: "User"},
	)
	svc := NewRoleService(repo, zerolog.Nop())

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if roles[0].RoleName != "Admin" || roles[1].RoleName != "User" {
		t.Fatalf("unexpected order: %+v", roles)
	}
}

func TestRoleService_ListRoles_Empty(t *testing.T) {
	svc := NewRoleService(newStubRoleRepo(), zerolog.Nop())

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(roles) != 0 {
		t.Fatalf("expected no roles, got %d", len(roles))
	}
}
