package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	bookingRepo "inkbook/database/repository/booking"
	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
)

// fakeBookingRepo is an in-memory BookingRepository with the same uniqueness
// semantics as the Mongo partial unique index, so the reservation race can be
// exercised without a database.
type fakeBookingRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.Booking
	held     map[string]string // "providerID|date|slot" -> bookingID
	insertGo func()            // optional hook to widen race windows
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID: make(map[string]*models.Booking),
		held: make(map[string]string),
	}
}

func slotKey(b *models.Booking) string {
	return fmt.Sprintf("%s|%s|%d", b.ProviderID, b.Date, b.Slot)
}

func (r *fakeBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if r.insertGo != nil {
		r.insertGo()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b.SlotHeld = models.HoldsSlot(b.Status)
	if b.SlotHeld {
		if _, taken := r.held[slotKey(b)]; taken {
			return bookingRepo.ErrSlotTaken
		}
		r.held[slotKey(b)] = b.ID
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) HeldSlots(ctx context.Context, providerID, date string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var slots []int
	for _, b := range r.byID {
		if b.ProviderID == providerID && b.Date == date && b.SlotHeld {
			slots = append(slots, b.Slot)
		}
	}
	sort.Ints(slots)
	return slots, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(ctx context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrNotFound
	}
	b.Status = to
	wasHeld := b.SlotHeld
	b.SlotHeld = models.HoldsSlot(to)
	if wasHeld && !b.SlotHeld {
		delete(r.held, slotKey(b))
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) MarkDepositPaid(ctx context.Context, id, paymentRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.DepositPaid {
		return false, nil
	}
	b.DepositPaid = true
	b.PaymentRef = paymentRef
	if b.Status == models.StatusPending {
		b.Status = models.StatusConfirmed
	}
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) MarkRefunded(ctx context.Context, id string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || !b.DepositPaid {
		return bookingRepo.ErrNotFound
	}
	b.Refunded = true
	b.RefundAmount = amount
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) ListByProvider(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.byID {
		if b.ProviderID != providerID {
			continue
		}
		if statusFilter != "" && b.Status != statusFilter {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Slot > out[j].Slot
	})
	return out, nil
}

func (r *fakeBookingRepo) ListByProviderDateRange(ctx context.Context, providerID, fromDate, toDate string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.byID {
		if b.ProviderID == providerID && b.Date >= fromDate && b.Date < toDate {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}

// fakeProviderRepo is an in-memory ProviderRepository.
type fakeProviderRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{byID: make(map[string]*models.Provider)}
	for _, p := range providers {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProviderRepo) GetByHandle(ctx context.Context, handle string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Handle == handle {
			clone := *p
			return &clone, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (r *fakeProviderRepo) UpdateAvailability(ctx context.Context, id string, availability models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Availability = availability
	return nil
}

func (r *fakeProviderRepo) UpdatePolicy(ctx context.Context, id string, policy models.BookingPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Policy = policy
	return nil
}

// testProvider is a standard fixture: Mon-Sat, 10:00-18:00, hour slots,
// 50% deposit with a $50 custom minimum.
func testProvider() *models.Provider {
	return &models.Provider{
		ID:          "prov-1",
		Handle:      "inkedseren",
		DisplayName: "Seren Vale",
		Email:       "seren@example.com",
		Availability: models.Availability{
			Days:         []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"},
			StartTime:    "10:00",
			EndTime:      "18:00",
			SlotDuration: 60,
		},
		Policy: models.BookingPolicy{
			DepositPercent:     50,
			CustomMinDeposit:   50,
			PlatformFeePercent: 5,
		},
	}
}

// fixedNow pins the service clock to a Tuesday morning.
func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
}

func newTestService(repo *fakeBookingRepo, providers ...*models.Provider) *DefaultBookingService {
	if len(providers) == 0 {
		providers = []*models.Provider{testProvider()}
	}
	return &DefaultBookingService{
		Repo:         repo,
		ProviderRepo: newFakeProviderRepo(providers...),
		Now:          fixedNow,
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ProviderID:    "prov-1",
		ClientName:    "Avery Chen",
		ClientEmail:   "avery@example.com",
		ClientPhone:   "+15550100",
		ClientAge:     29,
		DesignID:      "flash-7",
		DesignName:    "Crescent Moon",
		DesignType:    models.DesignFlash,
		Date:          "2026-03-12",
		TimeSlot:      "2:00 PM",
		Duration:      60,
		TotalPrice:    200,
		ConsentSigned: true,
	}
}
