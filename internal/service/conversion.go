package service

import (
	"fmt"
	"math/big"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/pkg/apperror"

	"github.com/shopspring/decimal"
)

// assetAmountPlaces is the precision of the human-readable asset amount.
const assetAmountPlaces = 18

var hundred = decimal.NewFromInt(100)

// AmountConverter turns a fiat amount into ledger smallest units.
//
// The smallest-unit quantity is the exact quotient fiat × unitsPerAsset /
// bufferedPrice rounded half away from zero. All operands are positive, so
// this is plain round-half-up.
type AmountConverter struct {
	bufferPercent decimal.Decimal
	unitsPerAsset decimal.Decimal
	places        int32 // log10(unitsPerAsset)
}

// NewAmountConverter creates a converter. bufferPercent is a percentage
// (0.5 means 0.5%) and must be positive. unitsPerAsset comes from the ledger
// adapter and must be a power of ten.
func NewAmountConverter(bufferPercent decimal.Decimal, unitsPerAsset int64) (*AmountConverter, error) {
	if !bufferPercent.IsPositive() {
		return nil, fmt.Errorf("buffer percent must be positive, got %s", bufferPercent)
	}
	places, ok := decimalPlaces(unitsPerAsset)
	if !ok {
		return nil, fmt.Errorf("units per asset must be a positive power of ten, got %d", unitsPerAsset)
	}
	return &AmountConverter{
		bufferPercent: bufferPercent,
		unitsPerAsset: decimal.NewFromInt(unitsPerAsset),
		places:        places,
	}, nil
}

// decimalPlaces returns k for units == 10^k.
func decimalPlaces(units int64) (int32, bool) {
	if units <= 0 {
		return 0, false
	}
	var k int32
	for units%10 == 0 {
		units /= 10
		k++
	}
	return k, units == 1
}

// BufferPercent returns the configured buffer.
func (c *AmountConverter) BufferPercent() decimal.Decimal {
	return c.bufferPercent
}

// BufferedPrice applies the buffer to a realized price.
func (c *AmountConverter) BufferedPrice(realized decimal.Decimal) decimal.Decimal {
	return realized.Mul(decimal.NewFromInt(1).Add(c.bufferPercent.Div(hundred)))
}

// Convert computes the asset quantity for fiat at quote. An unusable quote is
// a PriceFeedUnavailable error; a quantity that is zero or does not fit in
// uint64 is an InvalidAmount error. Neither is ever clamped.
func (c *AmountConverter) Convert(fiat decimal.Decimal, quote *domain.PriceQuote) (domain.Conversion, error) {
	if quote == nil {
		return domain.Conversion{}, apperror.ErrPriceFeedUnavailable(fmt.Errorf("no quote"))
	}
	if err := quote.Validate(); err != nil {
		return domain.Conversion{}, apperror.ErrPriceFeedUnavailable(err)
	}
	if !fiat.IsPositive() {
		return domain.Conversion{}, apperror.ErrInvalidAmount("fiat amount must be positive")
	}

	buffered := c.BufferedPrice(quote.RealizedPrice())
	quantity := fiat.Mul(c.unitsPerAsset).DivRound(buffered, 0)

	if !quantity.IsPositive() {
		return domain.Conversion{}, apperror.ErrInvalidAmount(
			fmt.Sprintf("%s at %s rounds to zero smallest units", fiat, buffered))
	}
	qty := quantity.BigInt()
	if !qty.IsUint64() {
		return domain.Conversion{}, apperror.ErrInvalidAmount(
			fmt.Sprintf("quantity %s exceeds the ledger range", quantity))
	}

	return domain.Conversion{
		Quote:         *quote,
		BufferPercent: c.bufferPercent,
		BufferedPrice: buffered,
		AssetAmount:   fiat.DivRound(buffered, assetAmountPlaces),
		Quantity:      qty.Uint64(),
	}, nil
}

// Reverse maps a quantity back to fiat at the given buffered price.
func (c *AmountConverter) Reverse(quantity uint64, bufferedPrice decimal.Decimal) decimal.Decimal {
	return fromUint64(quantity).Div(c.unitsPerAsset).Mul(bufferedPrice)
}

// HumanReadable formats a quantity in whole asset units, e.g. "1.243781095".
func (c *AmountConverter) HumanReadable(quantity uint64) string {
	return fromUint64(quantity).Shift(-c.places).StringFixed(c.places)
}

func fromUint64(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}
