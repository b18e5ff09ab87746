package service

import (
	"context"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/logger"

	"github.com/rs/zerolog"
)

// ConfirmationConfig controls polling and caching of confirmation lookups.
type ConfirmationConfig struct {
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	DefaultTimeout  time.Duration
	CacheTTL        time.Duration
}

// ConfirmationServiceImpl implements ports.ConfirmationService.
type ConfirmationServiceImpl struct {
	ledger ports.LedgerClient
	cache  ports.ConfirmationCache // optional
	cfg    ConfirmationConfig
	now    func() time.Time
	log    zerolog.Logger
}

// NewConfirmationService creates a new ConfirmationServiceImpl. cache may be nil.
func NewConfirmationService(
	ledger ports.LedgerClient,
	cache ports.ConfirmationCache,
	cfg ConfirmationConfig,
	log zerolog.Logger,
) *ConfirmationServiceImpl {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.MaxPollInterval < cfg.PollInterval {
		cfg.MaxPollInterval = cfg.PollInterval
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = time.Minute
	}
	return &ConfirmationServiceImpl{
		ledger: ledger,
		cache:  cache,
		cfg:    cfg,
		now:    time.Now,
		log:    logger.Component(log, "confirmation"),
	}
}

// Resolve looks up a signature once. Unknown signatures are pending. A
// failed transaction is a record with status failed, not an error.
func (s *ConfirmationServiceImpl) Resolve(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error) {
	if err := s.ledger.ValidateSignature(signatureID); err != nil {
		return nil, apperror.Validation("invalid signature: " + err.Error())
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, signatureID)
		if err != nil {
			s.log.Warn().Err(err).Msg("confirmation cache read failed, querying ledger")
		} else if cached != nil {
			return cached, nil
		}
	}

	rec, err := s.ledger.SignatureStatus(ctx, signatureID)
	if err != nil {
		return nil, keepAppError(err, apperror.ErrLedgerUnreachable)
	}
	if rec.ObservedAt.IsZero() {
		rec.ObservedAt = s.now().UTC()
	}

	if rec.IsTerminal() {
		s.log.Info().
			Str("signature", logger.ShortAddress(signatureID)).
			Str("status", string(rec.Status)).
			Uint64("slot", rec.Slot).
			Msg("transfer reached finality")

		if s.cache != nil && s.cfg.CacheTTL > 0 {
			if err := s.cache.Set(ctx, rec, s.cfg.CacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache confirmation record")
			}
		}
	}

	return rec, nil
}

// WaitForFinality polls with exponential backoff until the signature is
// terminal or timeout elapses. A timed-out wait yields status unknown, which
// is distinct from failed. Cancelling ctx returns ctx.Err().
func (s *ConfirmationServiceImpl) WaitForFinality(ctx context.Context, signatureID string, timeout time.Duration) (*domain.ConfirmationRecord, error) {
	if err := s.ledger.ValidateSignature(signatureID); err != nil {
		return nil, apperror.Validation("invalid signature: " + err.Error())
	}
	if timeout <= 0 {
		timeout = s.cfg.DefaultTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	interval := s.cfg.PollInterval
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Info().
				Str("signature", logger.ShortAddress(signatureID)).
				Dur("timeout", timeout).
				Msg("finality wait timed out")
			return &domain.ConfirmationRecord{
				SignatureID: signatureID,
				Status:      domain.FinalityUnknown,
				ObservedAt:  s.now().UTC(),
			}, nil
		case <-timer.C:
		}

		rec, err := s.Resolve(waitCtx, signatureID)
		switch {
		case err == nil && rec.IsTerminal():
			return rec, nil
		case err != nil && !apperror.Is(err, apperror.CodeLedgerUnreachable):
			return nil, err
		case err != nil:
			s.log.Warn().Err(err).Msg("ledger lookup failed while waiting, will poll again")
		}

		timer.Reset(interval)
		interval *= 2
		if interval > s.cfg.MaxPollInterval {
			interval = s.cfg.MaxPollInterval
		}
	}
}

// CheckpointLapsed reports whether the ledger block height is past the last
// height at which a transfer bound to cp can be processed. A checkpoint with no
// recorded height, or a height lookup that fails, is treated as still valid so
// a transfer that might yet land is never restarted.
func (s *ConfirmationServiceImpl) CheckpointLapsed(ctx context.Context, cp domain.Checkpoint) bool {
	if cp.LastValidHeight == 0 {
		return false
	}
	height, err := s.ledger.BlockHeight(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("checkpoint", cp.BlockID).Msg("block height unavailable, keeping checkpoint")
		return false
	}
	return cp.LapsedAt(height)
}
