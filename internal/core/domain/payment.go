package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveFiatAmount = errors.New("fiat amount must be greater than zero")
	ErrInvalidCurrency       = errors.New("currency must be a 3-letter ISO 4217 code")
	ErrMissingPayer          = errors.New("payer address is required")
)

// PaymentRequest is a single on-chain checkout attempt.
type PaymentRequest struct {
	FiatAmount   decimal.Decimal `json:"fiat_amount"`
	Currency     string          `json:"currency"`
	PayerAddress string          `json:"payer_address"`
}

// Validate checks the request shape. Ledger-specific address syntax is
// checked by the ledger adapter.
func (r PaymentRequest) Validate() error {
	if !r.FiatAmount.IsPositive() {
		return ErrNonPositiveFiatAmount
	}
	if !IsCurrencyCode(r.Currency) {
		return ErrInvalidCurrency
	}
	if strings.TrimSpace(r.PayerAddress) == "" {
		return ErrMissingPayer
	}
	return nil
}

// IsCurrencyCode reports whether s looks like an ISO 4217 alpha code.
func IsCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
