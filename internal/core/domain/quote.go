package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Exponent bounds accepted from a price feed. Anything outside this range is
// treated as a malformed response rather than scaled.
const (
	MinPriceExponent = -32
	MaxPriceExponent = 32
)

var ErrNonPositivePrice = errors.New("realized price must be positive")

// QuoteSource distinguishes live feed prices from the sandbox fixed price.
type QuoteSource string

const (
	QuoteSourceLive  QuoteSource = "live"
	QuoteSourceFixed QuoteSource = "fixed"
)

// PriceQuote is a price observation: realized price = BasePrice × 10^Exponent.
type PriceQuote struct {
	Pair       string          `json:"pair"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Exponent   int32           `json:"exponent"`
	ObservedAt time.Time       `json:"observed_at"`
	Source     QuoteSource     `json:"source"`
}

// RealizedPrice scales BasePrice by 10^Exponent in fixed point.
func (q PriceQuote) RealizedPrice() decimal.Decimal {
	return q.BasePrice.Shift(q.Exponent)
}

// Validate reports whether the quote can be used for conversion.
func (q PriceQuote) Validate() error {
	if q.Exponent < MinPriceExponent || q.Exponent > MaxPriceExponent {
		return fmt.Errorf("exponent %d outside [%d, %d]", q.Exponent, MinPriceExponent, MaxPriceExponent)
	}
	if !q.RealizedPrice().IsPositive() {
		return ErrNonPositivePrice
	}
	return nil
}

// Conversion is the result of turning a fiat amount into ledger smallest units.
type Conversion struct {
	Quote         PriceQuote      `json:"quote"`
	BufferPercent decimal.Decimal `json:"buffer_percent"`
	BufferedPrice decimal.Decimal `json:"buffered_price"`
	AssetAmount   decimal.Decimal `json:"asset_amount"`
	Quantity      uint64          `json:"quantity"`
}
