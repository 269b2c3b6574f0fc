package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

const receiptTTL = 24 * time.Hour

// ReceiptStore caches purchase receipts by Idempotency-Key so a resubmitted
// buy returns the original receipt instead of charging twice.
// Key format: receipt:<idempotency_key>
type ReceiptStore struct {
	client *redis.Client
}

func NewReceiptStore(client *redis.Client) *ReceiptStore {
	return &ReceiptStore{client: client}
}

// Get returns the cached receipt for key, if any.
func (s *ReceiptStore) Get(ctx context.Context, key string) (*domain.Receipt, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("receipt lookup: %w", err)
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return nil, false, fmt.Errorf("receipt decode: %w", err)
	}
	return &receipt, true, nil
}

// Save records the receipt under key (expires after receiptTTL).
func (s *ReceiptStore) Save(ctx context.Context, key string, receipt *domain.Receipt) error {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("receipt encode: %w", err)
	}
	return s.client.Set(ctx, s.key(key), raw, receiptTTL).Err()
}

func (s *ReceiptStore) key(k string) string {
	return "receipt:" + k
}
