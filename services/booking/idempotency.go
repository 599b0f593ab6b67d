package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Retried create requests reuse the caller-supplied Idempotency-Key header so
// a retry after a timeout cannot reserve a second slot.
const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps (providerID, key) pairs to the booking id the first
// successful create produced.
type IdempotencyStore struct {
	Client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{Client: client}
}

func (s *IdempotencyStore) key(providerID, key string) string {
	return fmt.Sprintf("idem:%s:%s", providerID, key)
}

// Lookup returns the booking id previously recorded for this key, or "" when
// the key is unseen.
func (s *IdempotencyStore) Lookup(ctx context.Context, providerID, key string) (string, error) {
	id, err := s.Client.Get(ctx, s.key(providerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup failed: %w", err)
	}
	return id, nil
}

// Record associates the key with a created booking id. The first writer wins;
// a concurrent duplicate leaves the original association in place.
func (s *IdempotencyStore) Record(ctx context.Context, providerID, key, bookingID string) error {
	if err := s.Client.SetNX(ctx, s.key(providerID, key), bookingID, idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("idempotency record failed: %w", err)
	}
	return nil
}
