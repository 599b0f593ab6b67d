// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"
	"errors"
	"log"

	"inkbook/database"
	"inkbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no provider matches the given filter.
var ErrNotFound = errors.New("provider not found")

type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByHandle(ctx context.Context, handle string) (*models.Provider, error)
	UpdateAvailability(ctx context.Context, id string, availability models.Availability) error
	UpdatePolicy(ctx context.Context, id string, policy models.BookingPolicy) error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database("inkbook")
	repo := &mongoProviderRepo{
		coll: db.Collection("providers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Fatalf("failed to create provider indexes: %v", err)
	}
	return repo
}
