// File: database/repository/provider/crud.go
package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkbook/models"
)

func (r *mongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}

func (r *mongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.getOne(ctx, bson.M{"id": id})
}

func (r *mongoProviderRepo) GetByHandle(ctx context.Context, handle string) (*models.Provider, error) {
	return r.getOne(ctx, bson.M{"handle": handle})
}

func (r *mongoProviderRepo) getOne(ctx context.Context, filter bson.M) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := r.coll.FindOne(ctx, filter).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	return &provider, nil
}

func (r *mongoProviderRepo) UpdateAvailability(ctx context.Context, id string, availability models.Availability) error {
	return r.setFields(ctx, id, bson.M{"availability": availability})
}

func (r *mongoProviderRepo) UpdatePolicy(ctx context.Context, id string, policy models.BookingPolicy) error {
	return r.setFields(ctx, id, bson.M{"policy": policy})
}

func (r *mongoProviderRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the providers collection.
func (r *mongoProviderRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_handle"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
