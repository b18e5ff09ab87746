package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateSessionRequest is the request body for a hosted checkout session.
type CreateSessionRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"` // minor units
	Currency string `json:"currency,omitempty" binding:"omitempty,iso_currency"`
}

// CreateSessionResponse is returned after a hosted session is created.
type CreateSessionResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// SessionQuery carries the session id for the query-string form of GET sessions.
type SessionQuery struct {
	SessionID string `form:"session_id" binding:"required,max=255,safe_id"`
}

// SessionResponse is the full view of a hosted session.
type SessionResponse struct {
	ID              string `json:"id"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	Paid            bool   `json:"paid"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
}

// QuoteQuery is the query string of the quote preview.
type QuoteQuery struct {
	FiatAmount string `form:"fiat_amount" binding:"required"`
	Currency   string `form:"currency" binding:"omitempty,iso_currency"`
}

// QuoteResponse previews a conversion.
type QuoteResponse struct {
	FiatAmount          string `json:"fiat_amount"`
	Currency            string `json:"currency"`
	Pair                string `json:"pair"`
	Price               string `json:"price"`
	PriceSource         string `json:"price_source"`
	PriceObservedAt     string `json:"price_observed_at"`
	BufferPercent       string `json:"buffer_percent"`
	BufferedPrice       string `json:"buffered_price"`
	AssetQuantity       uint64 `json:"asset_quantity"`
	HumanReadableAmount string `json:"human_readable_amount"`
}

// CreateTransferRequest is the request body for an unsigned transfer.
// FiatAmount accepts a JSON number or a decimal string.
type CreateTransferRequest struct {
	FiatAmount   decimal.Decimal `json:"fiat_amount"`
	PayerAddress string          `json:"payer_address" binding:"required,max=64"`
	Currency     string          `json:"currency,omitempty" binding:"omitempty,iso_currency"`
}

// CheckpointResponse describes the ledger checkpoint bound into a transfer.
type CheckpointResponse struct {
	BlockID         string `json:"block_id"`
	LastValidHeight uint64 `json:"last_valid_height"`
	ExpiresAt       string `json:"expires_at"`
}

// CreateTransferResponse carries the unsigned transfer to the wallet.
type CreateTransferResponse struct {
	UnsignedTransferBase64 string             `json:"unsigned_transfer_base64"`
	HumanReadableAmount    string             `json:"human_readable_amount"`
	AssetQuantity          uint64             `json:"asset_quantity"`
	Payer                  string             `json:"payer"`
	Payee                  string             `json:"payee"`
	Checkpoint             CheckpointResponse `json:"checkpoint"`
	ExpiresAt              string             `json:"expires_at"`
	CheckoutTicket         string             `json:"checkout_ticket"`
	TicketExpiresAt        string             `json:"ticket_expires_at"`
	State                  string             `json:"state"`
	Price                  string             `json:"price"`
	BufferedPrice          string             `json:"buffered_price"`
}

// CreatePaymentLinkRequest is the request body for a wallet transfer-request URL.
type CreatePaymentLinkRequest struct {
	FiatAmount decimal.Decimal `json:"fiat_amount"`
	Currency   string          `json:"currency,omitempty" binding:"omitempty,iso_currency"`
	Memo       string          `json:"memo,omitempty" binding:"max=120"`
}

// PaymentLinkResponse holds the transfer-request URL.
type PaymentLinkResponse struct {
	URL           string `json:"url"`
	AssetAmount   string `json:"asset_amount"`
	AssetQuantity uint64 `json:"asset_quantity"`
}

// ConfirmationQuery holds optional confirmation lookup parameters.
type ConfirmationQuery struct {
	Wait string `form:"wait"` // Go duration or whole seconds
}

// ConfirmationResponse is a confirmation record plus the checkout state when
// a ticket was supplied.
type ConfirmationResponse struct {
	Signature   string          `json:"signature"`
	Status      string          `json:"status"`
	LedgerError json.RawMessage `json:"ledger_error,omitempty"`
	Slot        uint64          `json:"slot,omitempty"`
	BlockTime   *string         `json:"block_time,omitempty"`
	ObservedAt  string          `json:"observed_at"`
	State       string          `json:"state,omitempty"`
}
