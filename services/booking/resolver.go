package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/utils"

	"go.uber.org/zap"
)

// ListSlots merges the generated candidate slots with the provider's live
// bookings for the date. Results may be served from a short-TTL cache: the
// list is advisory, the create path re-checks against the store.
func (s *DefaultBookingService) ListSlots(ctx context.Context, providerID, date string) ([]models.SlotStatus, error) {
	logger := utils.GetLogger()

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		if err == providerRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
		}
		return nil, NewStoreUnavailableError(fmt.Sprintf("provider lookup failed: %v", err))
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	// Past dates and non-working days offer no slots. Not an error: the
	// booking calendar simply shows the day as unavailable.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) || !provider.Availability.WorksOn(day.Weekday()) {
		return []models.SlotStatus{}, nil
	}

	if cached, ok := s.cachedSlots(ctx, providerID, date); ok {
		return cached, nil
	}

	candidates, err := GenerateSlots(provider.Availability)
	if err != nil {
		// A corrupt availability config degrades to "no slots offered".
		logger.Warn("provider availability config rejected",
			zap.String("providerID", providerID), zap.Error(err))
		return []models.SlotStatus{}, nil
	}

	held, err := s.Repo.HeldSlots(ctx, providerID, date)
	if err != nil {
		return nil, NewStoreUnavailableError(fmt.Sprintf("booking lookup failed: %v", err))
	}
	taken := make(map[int]bool, len(held))
	for _, slot := range held {
		taken[slot] = true
	}

	statuses := make([]models.SlotStatus, len(candidates))
	for i, slot := range candidates {
		statuses[i] = models.SlotStatus{
			Slot:      slot,
			Label:     models.FormatSlot(slot),
			Available: !taken[slot],
		}
	}

	s.cacheSlots(ctx, providerID, date, statuses)
	return statuses, nil
}

func slotCacheKey(providerID, date string) string {
	return fmt.Sprintf("slots:%s:%s", providerID, date)
}

func (s *DefaultBookingService) cachedSlots(ctx context.Context, providerID, date string) ([]models.SlotStatus, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, slotCacheKey(providerID, date)).Result()
	if err != nil {
		return nil, false
	}
	var statuses []models.SlotStatus
	if err := json.Unmarshal([]byte(data), &statuses); err != nil {
		return nil, false
	}
	return statuses, true
}

func (s *DefaultBookingService) cacheSlots(ctx context.Context, providerID, date string, statuses []models.SlotStatus) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(statuses)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, slotCacheKey(providerID, date), data, s.CacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache slot list",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
	}
}

// invalidateSlots drops the cached list after any write that changes slot
// occupancy, bounding staleness to a single request.
func (s *DefaultBookingService) invalidateSlots(ctx context.Context, providerID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, slotCacheKey(providerID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
	}
}
