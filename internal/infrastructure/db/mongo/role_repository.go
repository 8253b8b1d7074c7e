package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/miniiam/iam-service/internal/core/domain"
)

const roleCollection = "roles"

// RoleRepository is the MongoDB implementation of ports.RoleRepository.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

// seq preserves insertion order for List, which mongo does not otherwise
// guarantee across storage engines.
type mongoRoleDoc struct {
	ID       string `bson:"_id"`
	RoleName string `bson:"role_name"`
	Seq      int64  `bson:"seq"`
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	var doc mongoRoleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: doc.ID, RoleName: doc.RoleName}, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	var docs []mongoRoleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, doc := range docs {
		roles = append(roles, domain.Role{ID: doc.ID, RoleName: doc.RoleName})
	}
	return roles, nil
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	stored := *role
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	seq, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("count roles: %w", err)
	}

	doc := mongoRoleDoc{ID: stored.ID, RoleName: stored.RoleName, Seq: seq}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return &stored, nil
}
