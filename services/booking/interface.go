package booking

import (
	"context"
	"time"

	bookingRepo "inkbook/database/repository/booking"
	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"

	"github.com/go-redis/redis/v8"
)

// CreateBookingInput carries every field of a booking draft through the
// reservation flow as explicit request-scoped state.
type CreateBookingInput struct {
	ProviderID     string  `json:"providerId"`
	IdempotencyKey string  `json:"-"`
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	ClientPhone    string  `json:"clientPhone"`
	ClientAge      int     `json:"clientAge"`
	DesignID       string  `json:"designId"`
	DesignName     string  `json:"designName"`
	DesignType     string  `json:"designType"`
	CustomDesc     string  `json:"customDescription"`
	Date           string  `json:"date"`     // "2006-01-02"
	TimeSlot       string  `json:"timeSlot"` // label, e.g. "2:00 PM" or "14:00"
	Duration       int     `json:"estimatedDuration"`
	TotalPrice     float64 `json:"totalPrice"`
	DepositAmount  float64 `json:"depositAmount"` // 0 means "compute from policy"
	ConsentSigned  bool    `json:"consentSigned"`
}

// BookingService is the single validation and reservation path consumed by
// every caller (booking page, dashboard, payment callback).
type BookingService interface {
	// ListSlots resolves the availability list for one provider/date.
	ListSlots(ctx context.Context, providerID, date string) ([]models.SlotStatus, error)

	// CreateBooking validates the draft and atomically reserves the slot,
	// returning the new pending booking.
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error)
	TodayBookings(ctx context.Context, providerID string) ([]models.Booking, error)

	// ConfirmDeposit handles the payment collaborator's callback. Idempotent.
	ConfirmDeposit(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error)

	// UpdateStatus applies a lifecycle transition.
	UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)

	// RefundDeposit is the provider's explicit override of the default
	// deposit-forfeiture policy. Independent of booking status.
	RefundDeposit(ctx context.Context, bookingID string, amount float64) (*models.Booking, error)

	MonthlyStats(ctx context.Context, providerID, month string) (*models.MonthlyStats, error)
}

// DefaultBookingService is the production reservation engine.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Cache        *redis.Client // slot-availability cache, may be nil
	Idempotency  *IdempotencyStore
	CacheTTL     time.Duration
	Now          func() time.Time // injectable clock
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
