package postgres

import (
	"context"
	"fmt"
)

// HealthCheck reports whether the audit store is reachable and its table exists.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, "SELECT 1 FROM audit_logs LIMIT 0"); err != nil {
		return fmt.Errorf("audit store: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
