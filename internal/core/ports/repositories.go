package ports

import (
	"context"
	"time"

	"checkout-gateway/internal/core/domain"
)

// AuditRepository persists request audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// ConfirmationCache holds terminal confirmation records. Only terminal
// records may be stored since they never change.
type ConfirmationCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error)
	Set(ctx context.Context, record *domain.ConfirmationRecord, ttl time.Duration) error
}

// RateLimiter counts requests per key within fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}
