// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (providerId, date, slot) where slotHeld is true
// is the authoritative double-booking guard: concurrent inserts for the same
// triple race inside MongoDB and all but one fail with a duplicate-key error.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One live booking per provider/date/slot. Terminal bookings drop out
		// of the index when slotHeld is cleared, freeing the slot.
		{
			Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_held_slot").
				SetPartialFilterExpression(bson.M{"slotHeld": true}),
		},
		// Compound index for providerId and date (primary query pattern)
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("provider_date_idx"),
		},
		// Compound index for providerId + status for dashboard filters
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("provider_status_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
