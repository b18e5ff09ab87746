package pricefeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"checkout-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// FixedFeed is the sandbox price feed. Its quotes are tagged
// domain.QuoteSourceFixed so they can never pass as live prices.
type FixedFeed struct {
	pair  string
	price decimal.Decimal
	now   func() time.Time
}

// NewFixedFeed creates a sandbox feed quoting price for pair.
func NewFixedFeed(pair string, price decimal.Decimal) (*FixedFeed, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("fixed price must be positive, got %s", price)
	}
	return &FixedFeed{pair: strings.ToUpper(pair), price: price, now: time.Now}, nil
}

// Quote returns the configured price.
func (f *FixedFeed) Quote(_ context.Context, pair string) (*domain.PriceQuote, error) {
	if strings.ToUpper(pair) != f.pair {
		return nil, fmt.Errorf("fixed feed only quotes %s", f.pair)
	}
	return &domain.PriceQuote{
		Pair:       f.pair,
		BasePrice:  f.price,
		Exponent:   0,
		ObservedAt: f.now().UTC(),
		Source:     domain.QuoteSourceFixed,
	}, nil
}

// Name returns the dependency name.
func (f *FixedFeed) Name() string {
	return "fixed-price"
}

// Ping always succeeds.
func (f *FixedFeed) Ping(context.Context) error {
	return nil
}
