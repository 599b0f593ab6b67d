package booking

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestIdempotencyStoreRecordAndLookup(t *testing.T) {
	store := NewIdempotencyStore(newTestRedis(t))
	ctx := context.Background()

	got, err := store.Lookup(ctx, "prov-1", "req-abc")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Record(ctx, "prov-1", "req-abc", "booking-1"))

	got, err = store.Lookup(ctx, "prov-1", "req-abc")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", got)
}

func TestIdempotencyStoreFirstWriterWins(t *testing.T) {
	store := NewIdempotencyStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "prov-1", "req-abc", "booking-1"))
	require.NoError(t, store.Record(ctx, "prov-1", "req-abc", "booking-2"))

	got, err := store.Lookup(ctx, "prov-1", "req-abc")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", got)
}

func TestIdempotencyStoreScopedByProvider(t *testing.T) {
	store := NewIdempotencyStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "prov-1", "req-abc", "booking-1"))

	got, err := store.Lookup(ctx, "prov-2", "req-abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A retried create with the same Idempotency-Key replays the original booking
// instead of reserving a second slot.
func TestCreateBookingReplaysIdempotencyKey(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	svc.Idempotency = NewIdempotencyStore(newTestRedis(t))
	ctx := context.Background()

	input := validInput()
	input.IdempotencyKey = "req-abc"

	first, err := svc.CreateBooking(ctx, input)
	require.NoError(t, err)

	second, err := svc.CreateBooking(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// A different key for the same slot conflicts as usual.
	input.IdempotencyKey = "req-def"
	_, err = svc.CreateBooking(ctx, input)
	require.Error(t, err)
	assert.Equal(t, CodeSlotConflict, ErrorCode(err))
}
