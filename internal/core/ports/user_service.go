package ports

import (
	"context"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// CreateUserInput carries the data needed to register a new user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserProfile is the credential-free projection of a user returned by
// GetUserWithRoles: no identifier, no password, role names only.
type UserProfile struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// UserService defines the use-case operations of the user domain.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	AssignRole(ctx context.Context, userID, roleID string) error
	// GetUserByID returns (nil, nil) when the user does not exist; absence
	// is a valid outcome, not a failure.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserWithRoles(ctx context.Context, id string) (*UserProfile, error)
	// SimulateLogin reports whether a user with matching credentials exists.
	// No session or token is created.
	SimulateLogin(ctx context.Context, email, password string) (bool, error)
}
