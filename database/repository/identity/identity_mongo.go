package identityRepo

import (
	"context"
	"fmt"
	"time"

	"cupid/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIdentityRepo implements IdentityRepository using MongoDB.
type MongoIdentityRepo struct {
	coll *mongo.Collection
}

// NewMongoIdentityRepo creates a new instance of IdentityRepository using MongoDB.
func NewMongoIdentityRepo() IdentityRepository {
	coll := database.MongoClient.Database("cupid").Collection("identities")
	repo := &MongoIdentityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoIdentityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByEmailWithProjection retrieves an identity by email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoIdentityRepo) GetByEmailWithProjection(email string, projection bson.M) (*Identity, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var ident Identity
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&ident); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch identity with email %s: %w", email, err)
	}
	return &ident, nil
}

// GetByEmail retrieves an identity by email (full document).
func (r *MongoIdentityRepo) GetByEmail(email string) (*Identity, error) {
	return r.GetByEmailWithProjection(email, nil)
}

// GetByID retrieves an identity by its unique ID.
func (r *MongoIdentityRepo) GetByID(id string) (*Identity, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var ident Identity
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ident); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch identity with id %s: %w", id, err)
	}
	return &ident, nil
}

// Create inserts a new identity document.
func (r *MongoIdentityRepo) Create(ident *Identity) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	ident.CreatedAt = now
	ident.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, ident)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

// UpdatePasswordHash replaces the stored password hash.
func (r *MongoIdentityRepo) UpdatePasswordHash(id, hash string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update identity password for id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("identity with id %s not found", id)
	}
	return nil
}

// Delete removes an identity document by its ID.
func (r *MongoIdentityRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete identity with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("identity with id %s not found", id)
	}
	return nil
}
