// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"log"

	"inkbook/database"
	"inkbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotTaken is returned by Insert when another non-terminal booking
// already holds the (providerId, date, slot) triple. It is the store-level
// face of the double-booking guard.
var ErrSlotTaken = errors.New("slot already held by another booking")

// ErrNotFound is returned when no booking matches the given filter.
var ErrNotFound = errors.New("booking not found")

type BookingRepository interface {
	// Insert persists a new booking. The uniqueness check on
	// (providerId, date, slot) for slot-holding bookings happens inside the
	// same write via the partial unique index; a losing race returns
	// ErrSlotTaken.
	Insert(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// HeldSlots returns the canonical slot ids of all bookings for the
	// provider on the given date whose status still holds the slot.
	HeldSlots(ctx context.Context, providerID, date string) ([]int, error)

	// UpdateStatusFrom atomically moves a booking from one status to another,
	// keeping the slotHeld flag in sync. Returns ErrNotFound when the booking
	// is missing or no longer in the expected status.
	UpdateStatusFrom(ctx context.Context, id, from, to string) error

	// MarkDepositPaid records the payment reference and flips depositPaid,
	// transitioning pending bookings to confirmed. Returns (false, nil) when
	// the deposit was already recorded, making redelivered callbacks no-ops.
	MarkDepositPaid(ctx context.Context, id, paymentRef string) (bool, error)

	// MarkRefunded flags the deposit as refunded with the given amount.
	MarkRefunded(ctx context.Context, id string, amount float64) error

	ListByProvider(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error)
	ListByProviderDateRange(ctx context.Context, providerID, fromDate, toDate string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository. Index
// creation happens here so the double-booking guard exists before the first
// insert.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("inkbook")
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Fatalf("failed to create booking indexes: %v", err)
	}
	return repo
}
