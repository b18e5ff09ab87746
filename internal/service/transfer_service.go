package service

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/logger"

	"github.com/rs/zerolog"
)

// TransferBuilder produces unsigned transfer descriptors paying the merchant.
type TransferBuilder struct {
	ledger   ports.LedgerClient
	merchant string
	log      zerolog.Logger
}

// NewTransferBuilder creates a TransferBuilder paying merchant.
func NewTransferBuilder(ledger ports.LedgerClient, merchant string, log zerolog.Logger) *TransferBuilder {
	return &TransferBuilder{
		ledger:   ledger,
		merchant: merchant,
		log:      logger.Component(log, "transfer_builder"),
	}
}

// ValidatePayer checks payer address syntax without touching the network.
func (b *TransferBuilder) ValidatePayer(payer string) error {
	if err := b.ledger.ValidateAddress(payer); err != nil {
		return apperror.ErrInvalidAddress("payer", err)
	}
	return nil
}

// Build validates both parties, fetches a fresh checkpoint and encodes the
// transfer. Address failures are reported before any network call, and a
// zero quantity is never encoded.
func (b *TransferBuilder) Build(ctx context.Context, payer string, quantity uint64) (*domain.TransferDescriptor, error) {
	if err := b.ledger.ValidateAddress(b.merchant); err != nil {
		return nil, apperror.ErrInvalidAddress("merchant", err)
	}
	if err := b.ValidatePayer(payer); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, apperror.ErrInvalidAmount("quantity is zero")
	}

	cp, err := b.ledger.LatestCheckpoint(ctx)
	if err != nil {
		return nil, keepAppError(err, apperror.ErrLedgerUnreachable)
	}

	d, err := b.ledger.EncodeTransfer(payer, b.merchant, quantity, *cp)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encoding transfer: %w", err))
	}
	if err := d.Validate(); err != nil {
		return nil, apperror.InternalError(err)
	}

	b.log.Info().
		Uint64("quantity", quantity).
		Str("checkpoint", cp.BlockID).
		Time("expires_at", cp.ExpiresAt).
		Msg("transfer descriptor built")
	b.log.Debug().
		Str("payer", logger.ShortAddress(payer)).
		Msg("transfer payer")

	return d, nil
}

// keepAppError returns err unchanged when it already carries an AppError and
// wraps it otherwise.
func keepAppError(err error, wrap func(error) *apperror.AppError) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return wrap(err)
}
