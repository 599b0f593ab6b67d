package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "inkbook/database/repository/booking"
	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/utils"
)

// CreateBooking validates a booking draft and reserves its slot. The insert
// and the uniqueness check are a single atomic write against the store, so a
// stale availability list can never produce a double booking — the loser of
// a race gets a slot conflict.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	provider, err := s.ProviderRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s not found", input.ProviderID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("provider lookup failed: %v", err))
	}

	slot, day, err := s.validateDraft(provider, &input)
	if err != nil {
		return nil, err
	}

	// A retried request replays the original result instead of reserving a
	// second slot.
	if input.IdempotencyKey != "" && s.Idempotency != nil {
		existingID, err := s.Idempotency.Lookup(ctx, input.ProviderID, input.IdempotencyKey)
		if err != nil {
			logger.Warn("idempotency lookup failed, proceeding without replay", zap.Error(err))
		} else if existingID != "" {
			return s.GetBooking(ctx, existingID)
		}
	}

	deposit := input.DepositAmount
	if deposit == 0 {
		deposit = DepositFor(provider.Policy, input.TotalPrice)
	}

	now := s.now()
	b := &models.Booking{
		ID:                uuid.New().String(),
		ProviderID:        provider.ID,
		ClientName:        strings.TrimSpace(input.ClientName),
		ClientEmail:       strings.TrimSpace(input.ClientEmail),
		ClientPhone:       strings.TrimSpace(input.ClientPhone),
		ClientAge:         input.ClientAge,
		DesignID:          input.DesignID,
		DesignName:        input.DesignName,
		DesignType:        input.DesignType,
		CustomDescription: strings.TrimSpace(input.CustomDesc),
		Date:              day.Format("2006-01-02"),
		Slot:              slot,
		EstimatedDuration: input.Duration,
		TotalPrice:        input.TotalPrice,
		DepositAmount:     deposit,
		DepositPaid:       false,
		ConsentSigned:     true,
		ConsentAt:         &now,
		Status:            models.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if b.EstimatedDuration == 0 {
		b.EstimatedDuration = provider.Availability.SlotDuration
	}

	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, NewSlotConflictError(
				fmt.Sprintf("slot %s on %s is no longer available", models.FormatSlot(slot), b.Date))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("booking insert failed: %v", err))
	}

	if input.IdempotencyKey != "" && s.Idempotency != nil {
		if err := s.Idempotency.Record(ctx, input.ProviderID, input.IdempotencyKey, b.ID); err != nil {
			logger.Warn("failed to record idempotency key", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.invalidateSlots(ctx, provider.ID, b.Date)
	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("providerID", provider.ID),
		zap.String("date", b.Date),
		zap.String("slot", models.FormatSlot(slot)))
	return b, nil
}

// validateDraft enforces the create-time policy checks and resolves the slot
// label to its canonical id. Availability membership guarantees the stored
// slot always comes from the provider's generated set.
func (s *DefaultBookingService) validateDraft(provider *models.Provider, input *CreateBookingInput) (int, time.Time, error) {
	var zero time.Time

	if strings.TrimSpace(input.ClientName) == "" {
		return 0, zero, NewValidationError("client name is required")
	}
	if strings.TrimSpace(input.ClientEmail) == "" {
		return 0, zero, NewValidationError("client email is required")
	}
	if input.ClientAge < 18 {
		return 0, zero, NewValidationError("clients must be 18 or older")
	}
	if !input.ConsentSigned {
		return 0, zero, NewValidationError("consent form must be signed")
	}
	switch input.DesignType {
	case models.DesignFlash, models.DesignCustom:
	default:
		return 0, zero, NewValidationError(fmt.Sprintf("unknown design type %q", input.DesignType))
	}
	if input.TotalPrice < 0 {
		return 0, zero, NewValidationError("total price cannot be negative")
	}
	if input.DepositAmount < 0 {
		return 0, zero, NewValidationError("deposit amount cannot be negative")
	}
	if input.TotalPrice > 0 && input.DepositAmount > input.TotalPrice {
		return 0, zero, NewValidationError("deposit cannot exceed the total price")
	}

	day, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		return 0, zero, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", input.Date))
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return 0, zero, NewValidationError("cannot book a date in the past")
	}
	if !provider.Availability.WorksOn(day.Weekday()) {
		return 0, zero, NewValidationError(
			fmt.Sprintf("%s is not a working day for this provider", day.Weekday()))
	}

	slot, err := models.ParseSlot(input.TimeSlot)
	if err != nil {
		return 0, zero, NewValidationError(err.Error())
	}
	candidates, err := GenerateSlots(provider.Availability)
	if err != nil {
		return 0, zero, NewValidationError(fmt.Sprintf("provider availability is misconfigured: %v", err))
	}
	if !slotInSet(candidates, slot) {
		return 0, zero, NewValidationError(
			fmt.Sprintf("time %s is not a bookable slot for this provider", models.FormatSlot(slot)))
	}
	return slot, day, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", id))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("booking lookup failed: %v", err))
	}
	return b, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error) {
	if statusFilter != "" && !ValidStatus(statusFilter) {
		return nil, NewValidationError(fmt.Sprintf("unknown status %q", statusFilter))
	}
	bookings, err := s.Repo.ListByProvider(ctx, providerID, statusFilter)
	if err != nil {
		return nil, NewStoreUnavailableError(fmt.Sprintf("booking list failed: %v", err))
	}
	return bookings, nil
}

func (s *DefaultBookingService) TodayBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings, err := s.Repo.ListByProviderDateRange(ctx, providerID,
		today.Format("2006-01-02"), today.AddDate(0, 0, 1).Format("2006-01-02"))
	if err != nil {
		return nil, NewStoreUnavailableError(fmt.Sprintf("booking list failed: %v", err))
	}
	return bookings, nil
}

// ConfirmDeposit records the payment reference and moves a pending booking to
// confirmed. Payment callbacks may be redelivered; a second call with the same
// booking id is a no-op.
func (s *DefaultBookingService) ConfirmDeposit(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error) {
	if strings.TrimSpace(paymentRef) == "" {
		return nil, NewValidationError("payment reference is required")
	}

	applied, err := s.Repo.MarkDepositPaid(ctx, bookingID, paymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("deposit confirmation failed: %v", err))
	}
	if applied {
		utils.GetLogger().Info("deposit confirmed",
			zap.String("bookingID", bookingID), zap.String("paymentRef", paymentRef))
	}
	return s.GetBooking(ctx, bookingID)
}

// UpdateStatus applies one lifecycle transition. Illegal moves, including any
// move out of a terminal status, are rejected and never auto-corrected.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if !ValidStatus(status) {
		return nil, NewValidationError(fmt.Sprintf("unknown status %q", status))
	}

	b, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, status) {
		return nil, NewInvalidTransitionError(
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, status))
	}

	// The update is conditional on the status we just observed, so two racing
	// transitions cannot both apply.
	if err := s.Repo.UpdateStatusFrom(ctx, bookingID, b.Status, status); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewInvalidTransitionError(
				fmt.Sprintf("booking %s changed concurrently, re-fetch and retry", bookingID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("status update failed: %v", err))
	}

	// Terminal transitions release the slot.
	if models.HoldsSlot(b.Status) && !models.HoldsSlot(status) {
		s.invalidateSlots(ctx, b.ProviderID, b.Date)
	}
	utils.GetLogger().Info("booking status updated",
		zap.String("bookingID", bookingID), zap.String("from", b.Status), zap.String("to", status))
	return s.GetBooking(ctx, bookingID)
}

// RefundDeposit marks a paid deposit refunded. Cancellation alone never
// refunds — the deposit is forfeited unless the provider calls this
// explicitly. Amount 0 refunds the full deposit.
func (s *DefaultBookingService) RefundDeposit(ctx context.Context, bookingID string, amount float64) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.DepositPaid {
		return nil, NewValidationError("no deposit has been paid on this booking")
	}
	if b.Refunded {
		return b, nil
	}
	if amount < 0 || amount > b.DepositAmount {
		return nil, NewValidationError(
			fmt.Sprintf("refund amount must be between 0 and the deposit of %.2f", b.DepositAmount))
	}
	if amount == 0 {
		amount = b.DepositAmount
	}

	if err := s.Repo.MarkRefunded(ctx, bookingID, amount); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("refund failed: %v", err))
	}
	utils.GetLogger().Info("deposit refunded",
		zap.String("bookingID", bookingID), zap.Float64("amount", amount))
	return s.GetBooking(ctx, bookingID)
}
