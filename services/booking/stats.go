package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/utils"

	"go.uber.org/zap"
)

// MonthlyStats aggregates one calendar month of a provider's bookings into
// dashboard figures. Month is "YYYY-MM".
func (s *DefaultBookingService) MonthlyStats(ctx context.Context, providerID, month string) (*models.MonthlyStats, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid month %q, expected YYYY-MM", month))
	}
	end := start.AddDate(0, 1, 0)

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("provider lookup failed: %v", err))
	}

	bookings, err := s.Repo.ListByProviderDateRange(ctx, providerID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, NewStoreUnavailableError(fmt.Sprintf("stats query failed: %v", err))
	}

	stats := ComputeMonthlyStats(month, bookings, provider.Policy)
	utils.GetLogger().Debug("monthly stats computed",
		zap.String("providerID", providerID),
		zap.String("month", month),
		zap.Int("bookings", stats.TotalBookings))
	return stats, nil
}

// ComputeMonthlyStats folds a month of bookings into the dashboard figures.
// Revenue counts completed work only; deposits collected counts every paid
// deposit regardless of outcome, with refunds reported separately.
func ComputeMonthlyStats(month string, bookings []models.Booking, policy models.BookingPolicy) *models.MonthlyStats {
	stats := &models.MonthlyStats{
		Month:    month,
		ByStatus: map[string]int{},
	}

	for _, b := range bookings {
		stats.TotalBookings++
		stats.ByStatus[b.Status]++

		switch b.Status {
		case models.StatusCompleted:
			stats.CompletedBookings++
			stats.TotalRevenue += b.TotalPrice
		case models.StatusCancelled:
			stats.CancelledBookings++
		case models.StatusNoShow:
			stats.NoShows++
		}
		if b.DepositPaid {
			stats.DepositsCollected += b.DepositAmount
		}
		if b.Refunded {
			stats.DepositsRefunded += b.RefundAmount
		}
	}

	stats.TotalRevenue = roundCents(stats.TotalRevenue)
	stats.DepositsCollected = roundCents(stats.DepositsCollected)
	stats.DepositsRefunded = roundCents(stats.DepositsRefunded)
	stats.PlatformFees = PlatformFee(policy, stats.TotalRevenue)
	if stats.TotalBookings > 0 {
		stats.NoShowRate = int(math.Round(float64(stats.NoShows) / float64(stats.TotalBookings) * 100))
	}
	return stats
}
