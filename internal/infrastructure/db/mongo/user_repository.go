package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/miniiam/iam-service/internal/core/domain"
)

const userCollection = "users"

// UserRepository is the MongoDB implementation of ports.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoRole struct {
	ID       string `bson:"id"`
	RoleName string `bson:"role_name"`
}

// email_lower carries the lowercased email so case-insensitive lookups hit a
// plain equality filter.
type mongoUser struct {
	ID         string      `bson:"_id"`
	Name       string      `bson:"name"`
	Email      string      `bson:"email"`
	EmailLower string      `bson:"email_lower"`
	Password   string      `bson:"password"`
	Roles      []mongoRole `bson:"roles"`
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email_lower": strings.ToLower(email)})
}

func (r *UserRepository) FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"email_lower": strings.ToLower(email),
		"password":    password,
	})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *doc.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	if _, err := r.coll.InsertOne(ctx, fromDomain(&stored)); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &stored, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, fromDomain(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func fromDomain(user *domain.User) mongoUser {
	roles := make([]mongoRole, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, mongoRole{ID: role.ID, RoleName: role.RoleName})
	}
	return mongoUser{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		EmailLower: strings.ToLower(user.Email),
		Password:   user.Password,
		Roles:      roles,
	}
}

func (m *mongoUser) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(m.Roles))
	for _, role := range m.Roles {
		roles = append(roles, domain.Role{ID: role.ID, RoleName: role.RoleName})
	}
	return &domain.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Password: m.Password,
		Roles:    roles,
	}
}
