// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkbook/models"
)

func (r *mongoBookingRepo) HeldSlots(ctx context.Context, providerID, date string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date, "slotHeld": true}
	opts := options.Find().SetProjection(bson.M{"slot": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query held slots: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slot int `bson:"slot"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode held slots: %w", err)
	}
	slots := make([]int, len(docs))
	for i, d := range docs {
		slots[i] = d.Slot
	}
	return slots, nil
}

func (r *mongoBookingRepo) ListByProvider(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "slot", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByProviderDateRange returns bookings with fromDate <= date < toDate.
// Dates are "2006-01-02" strings, so the lexicographic range matches the
// calendar range.
func (r *mongoBookingRepo) ListByProviderDateRange(ctx context.Context, providerID, fromDate, toDate string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": fromDate, "$lt": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings in range: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
