package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/core/domain"
	"github.com/miniiam/iam-service/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	order  []string
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = make([]domain.Role, len(u.Roles))
	copy(clone.Roles, u.Roles)
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return cloneUser(r.users[id]), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, id := range r.order {
		if strings.EqualFold(r.users[id].Email, email) {
			return cloneUser(r.users[id]), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmailAndPassword(_ context.Context, email, password string) (*domain.User, error) {
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.Email, email) && u.Password == password {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	stored := cloneUser(user)
	if stored.ID == "" {
		r.nextID++
		stored.ID = "user_" + strconv.Itoa(r.nextID)
	}
	r.users[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.New("stub: user not found")
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
	order []string
}

func newStubRoleRepo(roles ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for i := range roles {
		role := roles[i]
		r.roles[role.ID] = &role
		r.order = append(r.order, role.ID)
	}
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.roles[id])
	}
	return out, nil
}

func (r *stubRoleRepo) Insert(_ context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	r.roles[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	return &clone, nil
}

func newTestService(users *stubUserRepo, roles *stubRoleRepo) *UserService {
	return NewUserService(users, roles, nil, zerolog.Nop())
}

func validInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     "TestUser",
		Email:    "testuser@example.com",
		Password: "123456",
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubRoleRepo())

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id, got empty")
	}
	if len(user.Roles) != 0 {
		t.Fatalf("expected empty role list, got %d", len(user.Roles))
	}
	if user.Password != "123456" {
		t.Fatalf("expected password stored as-is, got %q", user.Password)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored == nil || stored.Email != "testuser@example.com" {
		t.Fatalf("user not persisted: %+v", stored)
	}
}

func TestUserService_CreateUser_GeneratesDistinctIDs(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	first, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	in := validInput()
	in.Email = "other@example.com"
	second, err := svc.CreateUser(context.Background(), in)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}
}

func TestUserService_CreateUser_ValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		input ports.CreateUserInput
		want  string
	}{
		{
			name:  "all invalid reports name first",
			input: ports.CreateUserInput{Name: "", Password: "1", Email: "bad"},
			want:  "Name must be at least 6 characters.",
		},
		{
			name:  "short name",
			input: ports.CreateUserInput{Name: "abc", Password: "123456", Email: "a@example.com"},
			want:  "Name must be at least 6 characters.",
		},
		{
			name:  "whitespace-only name",
			input: ports.CreateUserInput{Name: "        ", Password: "123456", Email: "a@example.com"},
			want:  "Name must be at least 6 characters.",
		},
		{
			name:  "short password reported before bad email",
			input: ports.CreateUserInput{Name: "TestUser", Password: "1", Email: "bad"},
			want:  "Password must be at least 6 characters.",
		},
		{
			name:  "invalid email",
			input: ports.CreateUserInput{Name: "TestUser", Password: "123456", Email: "not-an-email"},
			want:  "Invalid email format.",
		},
		{
			name:  "missing email",
			input: ports.CreateUserInput{Name: "TestUser", Password: "123456", Email: ""},
			want:  "Invalid email format.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newStubUserRepo(), newStubRoleRepo())
			_, err := svc.CreateUser(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if err.Error() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.CreateUser(context.Background(), validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), validInput())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError kind, got %T", err)
	}
	if err.Error() != "User with this email already exists." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUserService_CreateUser_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.CreateUser(context.Background(), validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	in := validInput()
	in.Email = "TestUser@Example.COM"
	if _, err := svc.CreateUser(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for case variant, got %v", err)
	}
}

func TestUserService_AssignRole_UserNotFound(t *testing.T) {
	// Both lookups would fail; the user check must come first.
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	err := svc.AssignRole(context.Background(), "missing", "also-missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_AssignRole_RoleNotFound(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestService(users, newStubRoleRepo())

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AssignRole(context.Background(), user.ID, "missing"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_AssignRole_SecondAssignmentRejected(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.Role{ID: "role_admin", RoleName: "Admin"})
	svc := newTestService(users, roles)

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AssignRole(context.Background(), user.ID, "role_admin"); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	err = svc.AssignRole(context.Background(), user.ID, "role_admin")
	if !errors.Is(err, domain.ErrRoleAlreadyHeld) {
		t.Fatalf("expected ErrRoleAlreadyHeld, got %v", err)
	}
	if err.Error() != "User already has this role." {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	stored, _ := users.FindByID(context.Background(), user.ID)
	if len(stored.Roles) != 1 {
		t.Fatalf("expected exactly one role entry, got %d", len(stored.Roles))
	}
	if stored.Roles[0].RoleName != "Admin" {
		t.Fatalf("unexpected role: %+v", stored.Roles[0])
	}
}

func TestUserService_GetUserByID_AbsentIsNotAnError(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	user, err := svc.GetUserByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestUserService_GetUserWithRoles_Projection(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.Role{ID: "role_user", RoleName: "User"})
	svc := newTestService(users, roles)

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.AssignRole(context.Background(), user.ID, "role_user"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	profile, err := svc.GetUserWithRoles(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserWithRoles failed: %v", err)
	}
	if profile.Name != "TestUser" || profile.Email != "testuser@example.com" {
		t.Fatalf("unexpected projection: %+v", profile)
	}
	if len(profile.Roles) != 1 || profile.Roles[0] != "User" {
		t.Fatalf("expected role names only, got %+v", profile.Roles)
	}
}

func TestUserService_GetUserWithRoles_Absent(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())

	profile, err := svc.GetUserWithRoles(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}
}

type stubProfileCache struct {
	entries     map[string]*ports.UserProfile
	invalidated []string
}

func newStubProfileCache() *stubProfileCache {
	return &stubProfileCache{entries: make(map[string]*ports.UserProfile)}
}

func (c *stubProfileCache) Get(_ context.Context, userID string) (*ports.UserProfile, bool, error) {
	p, ok := c.entries[userID]
	return p, ok, nil
}

func (c *stubProfileCache) Set(_ context.Context, userID string, profile *ports.UserProfile) error {
	c.entries[userID] = profile
	return nil
}

func (c *stubProfileCache) Invalidate(_ context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	delete(c.entries, userID)
	return nil
}

func TestUserService_GetUserWithRoles_UsesCache(t *testing.T) {
	users := newStubUserRepo()
	cache := newStubProfileCache()
	svc := NewUserService(users, newStubRoleRepo(), cache, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetUserWithRoles(context.Background(), user.ID); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if _, ok := cache.entries[user.ID]; !ok {
		t.Fatalf("expected profile cached after read")
	}

	// Poison the cache entry; a hit must be served without a store read.
	cache.entries[user.ID] = &ports.UserProfile{Name: "FromCache", Email: "cache@example.com", Roles: []string{}}
	profile, err := svc.GetUserWithRoles(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if profile.Name != "FromCache" {
		t.Fatalf("expected cached profile, got %+v", profile)
	}
}

func TestUserService_AssignRole_InvalidatesCache(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(domain.Role{ID: "role_user", RoleName: "User"})
	cache := newStubProfileCache()
	svc := NewUserService(users, roles, cache, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.GetUserWithRoles(context.Background(), user.ID); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if err := svc.AssignRole(context.Background(), user.ID, "role_user"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != user.ID {
		t.Fatalf("expected cache invalidation for %s, got %v", user.ID, cache.invalidated)
	}
}

func TestUserService_SimulateLogin(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())
	if _, err := svc.CreateUser(context.Background(), validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"matching credentials", "testuser@example.com", "123456", true},
		{"email case-insensitive", "TESTUSER@EXAMPLE.COM", "123456", true},
		{"wrong password", "testuser@example.com", "654321", false},
		{"unknown email", "ghost@example.com", "123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.SimulateLogin(context.Background(), tt.email, tt.password)
			if err != nil {
				t.Fatalf("SimulateLogin returned error: %v", err)
			}
			if ok != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, ok)
			}
		})
	}
}
