package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/core/domain"
	"github.com/miniiam/iam-service/internal/core/ports"
)

const minNameLen = 6
const minPasswordLen = 6

// emailRule backs the service-level email format check with the same rule
// set the API edge uses for payload validation.
var emailRule = validator.New()

// ProfileCache abstracts the read-side cache for user profiles (Redis).
// Implementations must treat a miss as (nil, false, nil).
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*ports.UserProfile, bool, error)
	Set(ctx context.Context, userID string, profile *ports.UserProfile) error
	Invalidate(ctx context.Context, userID string) error
}

// UserService implements user registration, role assignment, retrieval, and
// login simulation. It is the only component that enforces business rules.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	cache ProfileCache
	log   zerolog.Logger

	// mu serializes the read-validate-write sequences of CreateUser and
	// AssignRole so two concurrent calls cannot both pass the uniqueness
	// or duplicate-role check and then both write.
	mu sync.Mutex
}

// NewUserService returns a UserService. cache may be nil, in which case
// profile reads go straight to the repository.
func NewUserService(users ports.UserRepository, roles ports.RoleRepository, cache ProfileCache, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, cache: cache, log: log}
}

// CreateUser validates the input and registers a new user with no roles.
// Checks run in a fixed order: name, password, email format, email
// uniqueness. The first violation decides the returned error.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" || len(input.Name) < minNameLen {
		return nil, domain.ErrNameTooShort
	}
	if strings.TrimSpace(input.Password) == "" || len(input.Password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}
	if emailRule.Var(input.Email, "required,email") != nil {
		return nil, domain.ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password, // stored as-is, compared verbatim at login
		Roles:    []domain.Role{},
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")

	return created, nil
}

// AssignRole appends the role to the user's role collection. Re-assignment
// of a role the user already holds is rejected, not silently accepted.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}

	if user.HasRole(roleID) {
		return domain.ErrRoleAlreadyHeld
	}

	user.Roles = append(user.Roles, *role)
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to persist role assignment")
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate profile cache")
		}
	}

	s.log.Info().Str("user_id", userID).Str("role_id", roleID).Str("role_name", role.RoleName).Msg("role assigned")

	return nil
}

// GetUserByID returns the user with roles, or (nil, nil) when absent.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// GetUserWithRoles projects the user into a credential-free profile. The
// projection is served from the cache when one is configured.
func (s *UserService) GetUserWithRoles(ctx context.Context, id string) (*ports.UserProfile, error) {
	if s.cache != nil {
		profile, hit, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("profile cache read failed")
		} else if hit {
			return profile, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	profile := &ports.UserProfile{
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleNames(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, profile); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("profile cache write failed")
		}
	}

	return profile, nil
}

// SimulateLogin reports whether a user exists with the given email
// (case-insensitive) and exactly that password. It is a plain lookup: no
// session, no token, no timing guarantees.
func (s *UserService) SimulateLogin(ctx context.Context, email, password string) (bool, error) {
	user, err := s.users.FindByEmailAndPassword(ctx, email, password)
	if err != nil {
		return false, err
	}

	result := "failure"
	if user != nil {
		result = "success"
	}
	s.log.Debug().Str("email", email).Str("result", result).Msg("login simulated")

	return user != nil, nil
}
