package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

const (
	rolesCollection       = "roles"
	modulesCollection     = "modules"
	roleModulesCollection = "role_modules"
)

// MongoGrantRepository resolves role→module grants from the roles,
// modules, and role_modules collections.
type MongoGrantRepository struct {
	roles       *mongo.Collection
	modules     *mongo.Collection
	roleModules *mongo.Collection
}

func NewGrantRepository(db *mongo.Database) *MongoGrantRepository {
	return &MongoGrantRepository{
		roles:       db.Collection(rolesCollection),
		modules:     db.Collection(modulesCollection),
		roleModules: db.Collection(roleModulesCollection),
	}
}

type mongoRole struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	IsDeleted bool               `bson:"is_deleted"`
}

type mongoRoleModule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoleID    string             `bson:"role_id"`
	ModuleID  primitive.ObjectID `bson:"module_id"`
	IsDeleted bool               `bson:"is_deleted"`
}

type mongoModule struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// ModulesForRole returns the module names granted to the role in grant
// insertion order, skipping revoked (soft-deleted) grants. A missing or
// soft-deleted role resolves to an empty set: its grant rows are still
// in role_modules, but they die with the role.
func (r *MongoGrantRepository) ModulesForRole(ctx context.Context, roleID string) ([]string, error) {
	if roleID == "" {
		return []string{}, nil
	}

	alive, err := r.roleAlive(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return []string{}, nil
	}

	cursor, err := r.roleModules.Find(ctx,
		bson.M{"role_id": roleID, "is_deleted": false},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find role modules: %w", err)
	}
	defer cursor.Close(ctx)

	var grants []mongoRoleModule
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, fmt.Errorf("decode role modules: %w", err)
	}
	if len(grants) == 0 {
		return []string{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ModuleID)
	}

	modCursor, err := r.modules.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find modules: %w", err)
	}
	defer modCursor.Close(ctx)

	var mods []mongoModule
	if err := modCursor.All(ctx, &mods); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}

	byID := make(map[primitive.ObjectID]string, len(mods))
	for _, m := range mods {
		byID[m.ID] = m.Name
	}

	names := make([]string, 0, len(grants))
	for _, g := range grants {
		if name, ok := byID[g.ModuleID]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// roleAlive reports whether the role document exists and is not
// soft-deleted. Grants are only honoured for live roles.
func (r *MongoGrantRepository) roleAlive(ctx context.Context, roleID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return false, nil
	}

	err = r.roles.FindOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find role: %w", err)
	}
	return true, nil
}

// RoleName resolves the live role's display name, defaulting to the
// customer tier when the role is absent or soft-deleted.
func (r *MongoGrantRepository) RoleName(ctx context.Context, roleID string) (string, error) {
	if roleID == "" {
		return domain.RoleNameCustomer, nil
	}

	oid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return domain.RoleNameCustomer, nil
	}

	var role mongoRole
	err = r.roles.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&role)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.RoleNameCustomer, nil
		}
		return "", fmt.Errorf("find role: %w", err)
	}
	return role.Name, nil
}
