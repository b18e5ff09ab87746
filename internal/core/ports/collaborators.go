package ports

import (
	"context"
	"errors"

	"checkout-gateway/internal/core/domain"
)

// PriceFeed returns live (or explicitly sandboxed) price quotes for an asset pair.
type PriceFeed interface {
	Quote(ctx context.Context, pair string) (*domain.PriceQuote, error)
	Name() string
}

// LedgerClient is the distributed-ledger boundary of the on-chain rail.
type LedgerClient interface {
	// ValidateAddress checks ledger-specific account identifier syntax.
	ValidateAddress(addr string) error
	// ValidateSignature checks transaction signature syntax.
	ValidateSignature(sig string) error
	// LatestCheckpoint fetches a recent checkpoint for binding a new transfer.
	LatestCheckpoint(ctx context.Context) (*domain.Checkpoint, error)
	// EncodeTransfer builds the unsigned, fee-payer-annotated wire form.
	EncodeTransfer(payer, payee string, quantity uint64, cp domain.Checkpoint) (*domain.TransferDescriptor, error)
	// SignatureStatus looks up finality once. Unknown signatures are pending
	// and marked not found.
	SignatureStatus(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error)
	// BlockHeight returns the current ledger block height.
	BlockHeight(ctx context.Context) (uint64, error)
}

// ErrSessionNotFound is returned by a HostedPaymentProvider for unknown session IDs.
var ErrSessionNotFound = errors.New("hosted session not found")

// HostedPaymentProvider is the redirect-based card/bank processor.
type HostedPaymentProvider interface {
	CreateSession(ctx context.Context, params HostedSessionParams) (*domain.HostedSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.HostedSession, error)
}

// HostedSessionParams is the provider input for a new session.
type HostedSessionParams struct {
	AmountMinor int64
	Currency    string
	SuccessURL  string
	CancelURL   string
}
