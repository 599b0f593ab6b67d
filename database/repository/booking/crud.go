// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"inkbook/models"
)

func (r *mongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.SlotHeld = models.HoldsSlot(booking.Status)
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) UpdateStatusFrom(ctx context.Context, id, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"slotHeld":  models.HoldsSlot(to),
			"updatedAt": time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) MarkDepositPaid(ctx context.Context, id, paymentRef string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Matching on depositPaid:false makes redelivered payment callbacks no-ops.
	filter := bson.M{"id": id, "depositPaid": false}
	// Pipeline update so the paid flag, payment reference, and the
	// pending->confirmed transition land in a single document write. Confirmed
	// or in-progress bookings keep their status.
	update := bson.A{
		bson.M{"$set": bson.M{
			"depositPaid": true,
			"paymentRef":  paymentRef,
			"updatedAt":   time.Now(),
			"status": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.StatusPending}},
				models.StatusConfirmed,
				"$status",
			}},
		}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark deposit paid: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either already paid or missing; disambiguate for the caller.
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return false, fmt.Errorf("failed to check booking %s: %w", id, err)
		}
		if count == 0 {
			return false, ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

func (r *mongoBookingRepo) MarkRefunded(ctx context.Context, id string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "depositPaid": true}
	update := bson.M{
		"$set": bson.M{
			"refunded":     true,
			"refundAmount": amount,
			"updatedAt":    time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking refunded: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
