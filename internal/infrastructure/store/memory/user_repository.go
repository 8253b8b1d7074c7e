package memory

import (
	"context"
	"strings"

	"github.com/miniiam/iam-service/internal/core/domain"
)

// UserRepository is the in-memory implementation of ports.UserRepository.
type UserRepository struct {
	coll *Collection[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		coll: NewCollection(
			Identity[domain.User]{
				Get: func(u *domain.User) string { return u.ID },
				Set: func(u *domain.User, id string) { u.ID = id },
			},
			cloneUser,
		),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = make([]domain.Role, len(u.Roles))
	copy(clone.Roles, u.Roles)
	return &clone
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.coll.FindByID(id), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.coll.FindBy(func(u *domain.User) bool {
		return strings.EqualFold(u.Email, email)
	}), nil
}

func (r *UserRepository) FindByEmailAndPassword(_ context.Context, email, password string) (*domain.User, error) {
	return r.coll.FindBy(func(u *domain.User) bool {
		return strings.EqualFold(u.Email, email) && u.Password == password
	}), nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	stored := r.coll.List()
	users := make([]domain.User, 0, len(stored))
	for _, u := range stored {
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	return r.coll.Insert(user), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	return r.coll.Update(user)
}
