package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"checkout-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ConfirmationCache implements ports.ConfirmationCache using Redis. Only
// terminal records are stored; they never change once observed.
type ConfirmationCache struct {
	client *goredis.Client
	prefix string
}

// NewConfirmationCache creates a new Redis-backed confirmation cache.
func NewConfirmationCache(client *goredis.Client) *ConfirmationCache {
	return &ConfirmationCache{
		client: client,
		prefix: "confirmation:",
	}
}

// Get retrieves a cached record by signature.
// Returns nil, nil if the key does not exist.
func (c *ConfirmationCache) Get(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error) {
	val, err := c.client.Get(ctx, c.prefix+signatureID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis confirmation get: %w", err)
	}

	var rec domain.ConfirmationRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("decoding cached confirmation: %w", err)
	}
	return &rec, nil
}

// Set stores a terminal record with TTL. Non-terminal records are rejected.
func (c *ConfirmationCache) Set(ctx context.Context, record *domain.ConfirmationRecord, ttl time.Duration) error {
	if record == nil || !record.IsTerminal() {
		return errors.New("only terminal confirmation records can be cached")
	}

	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding confirmation: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+record.SignatureID, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis confirmation set: %w", err)
	}
	return nil
}
