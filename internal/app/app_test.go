package app

import (
	"context"
	"testing"
	"time"

	"checkout-gateway/config"
	ledger "checkout-gateway/internal/adapter/ledger/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Ledger: config.LedgerConfig{
			RPCURL:             "http://127.0.0.1:8899",
			Cluster:            "localnet",
			Commitment:         "confirmed",
			CheckpointValidity: time.Minute,
			Timeout:            time.Second,
		},
		Merchant: config.MerchantConfig{Address: solana.NewWallet().PublicKey().String(), Label: "Shop"},
		PriceFeed: config.PriceFeedConfig{
			Mode:          config.PriceFeedModeFixed,
			FixedPrice:    "20",
			Pair:          "SOL/USD",
			QuoteCurrency: "USD",
		},
		Conversion: config.ConversionConfig{BufferPercent: "0.5"},
		Ticket:     config.TicketConfig{Issuer: "checkout-gateway", Grace: time.Minute},
	}
}

func TestNewOnChain(t *testing.T) {
	oc, err := NewOnChain(testConfig(), nil, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "fixed-price", oc.Feed.Name())
	assert.True(t, oc.Converter.BufferPercent().Equal(decimal.RequireFromString("0.5")))

	// Quote runs entirely against the fixed feed.
	q, err := oc.Feed.Quote(context.Background(), "SOL/USD")
	require.NoError(t, err)
	conv, err := oc.Converter.Convert(decimal.NewFromInt(25), q)
	require.NoError(t, err)
	assert.Equal(t, uint64(1243781095), conv.Quantity)
	// Quantities are lamports regardless of configuration.
	assert.Equal(t, "1.000000000", oc.Converter.HumanReadable(uint64(ledger.UnitsPerAsset)))
}

func TestNewOnChain_BadMerchant(t *testing.T) {
	cfg := testConfig()
	cfg.Merchant.Address = "placeholder"

	_, err := NewOnChain(cfg, nil, zerolog.Nop())
	assert.ErrorContains(t, err, "merchant.address")
}

func TestNewOnChain_BadBuffer(t *testing.T) {
	cfg := testConfig()
	cfg.Conversion.BufferPercent = "0"

	_, err := NewOnChain(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewPriceFeed(t *testing.T) {
	hermes, err := NewPriceFeed(config.PriceFeedConfig{
		Mode:     config.PriceFeedModeHermes,
		Endpoint: "https://hermes.pyth.network",
		FeedID:   "0xef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d",
		Pair:     "SOL/USD",
		Timeout:  time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "pyth-hermes", hermes.Name())

	_, err = NewPriceFeed(config.PriceFeedConfig{Mode: config.PriceFeedModeFixed, FixedPrice: "abc"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewPriceFeed(config.PriceFeedConfig{Mode: config.PriceFeedModeFixed, FixedPrice: "-1", Pair: "SOL/USD"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewPriceFeed(config.PriceFeedConfig{Mode: "cached"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestTicketSecret(t *testing.T) {
	cfg := testConfig()

	cfg.Ticket.Secret = "configured-secret"
	s, err := TicketSecret(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "configured-secret", s)

	cfg.Ticket.Secret = ""
	a, err := TicketSecret(cfg, zerolog.Nop())
	require.NoError(t, err)
	b, err := TicketSecret(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	cfg.Server.Mode = "release"
	_, err = TicketSecret(cfg, zerolog.Nop())
	assert.Error(t, err)
}
