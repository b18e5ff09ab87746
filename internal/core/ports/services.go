package ports

import (
	"context"
	"time"

	"checkout-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// --- Service Ports (Business Logic) ---

// OnChainCheckoutService orchestrates quote → conversion → unsigned transfer.
type OnChainCheckoutService interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error)
	CreateTransfer(ctx context.Context, req domain.PaymentRequest) (*TransferResult, error)
	PaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLinkResult, error)
}

// QuoteRequest asks for a conversion preview without building a transfer.
type QuoteRequest struct {
	FiatAmount decimal.Decimal
	Currency   string
}

// QuoteResult is a conversion preview.
type QuoteResult struct {
	Conversion          domain.Conversion
	FiatAmount          decimal.Decimal
	Currency            string
	HumanReadableAmount string
}

// TransferResult is returned to the client for signing.
type TransferResult struct {
	Descriptor          *domain.TransferDescriptor
	Conversion          domain.Conversion
	HumanReadableAmount string
	Ticket              string
	TicketExpiresAt     time.Time
	State               domain.CheckoutState
}

// PaymentLinkRequest asks for a wallet transfer-request URL (rendered as a QR code client-side).
type PaymentLinkRequest struct {
	FiatAmount decimal.Decimal
	Currency   string
	Memo       string
}

// PaymentLinkResult holds the transfer-request URL.
type PaymentLinkResult struct {
	URL        string
	Conversion domain.Conversion
}

// ConfirmationService resolves transaction finality.
type ConfirmationService interface {
	// Resolve performs a single idempotent lookup.
	Resolve(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error)
	// WaitForFinality polls with backoff until terminal or timeout. On timeout
	// the record status is unknown, never failed.
	WaitForFinality(ctx context.Context, signatureID string, timeout time.Duration) (*domain.ConfirmationRecord, error)
	// CheckpointLapsed reports whether the ledger is past cp's last valid
	// block height. It returns false when the height cannot be read.
	CheckpointLapsed(ctx context.Context, cp domain.Checkpoint) bool
}

// HostedCheckoutService wraps the hosted payment provider.
type HostedCheckoutService interface {
	CreateSession(ctx context.Context, req HostedSessionRequest) (*domain.HostedSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.HostedSession, error)
}

// HostedSessionRequest holds validated input for a hosted session.
type HostedSessionRequest struct {
	AmountMinor int64
	Currency    string
	Origin      string // request origin, used when no base URL is configured
}

// TicketService issues and parses checkout tickets carrying the flow state.
type TicketService interface {
	Issue(d *domain.TransferDescriptor, state domain.CheckoutState) (string, time.Time, error)
	Parse(token string) (*TicketClaims, error)
}

// TicketClaims holds the parsed checkout ticket.
type TicketClaims struct {
	Payer               string
	Payee               string
	Quantity            uint64
	CheckpointID        string
	LastValidHeight     uint64
	CheckpointExpiresAt time.Time
	State               domain.CheckoutState
}

// Checkpoint returns the checkpoint the ticket's transfer is bound to.
func (c *TicketClaims) Checkpoint() domain.Checkpoint {
	return domain.Checkpoint{
		BlockID:         c.CheckpointID,
		LastValidHeight: c.LastValidHeight,
		ExpiresAt:       c.CheckpointExpiresAt,
	}
}

// AuditService records audit entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
