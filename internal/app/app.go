// Package app wires the on-chain rail from configuration. It is shared by the
// HTTP server and the checkoutctl CLI.
package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"checkout-gateway/config"
	"checkout-gateway/internal/adapter/ledger/solana"
	"checkout-gateway/internal/adapter/pricefeed"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PriceSource is a price feed that can also report its health.
type PriceSource interface {
	ports.PriceFeed
	ports.HealthChecker
}

// OnChain holds the constructed on-chain rail.
type OnChain struct {
	Ledger        *solana.Client
	Feed          PriceSource
	Converter     *service.AmountConverter
	Tickets       *service.JWTTicketService
	Checkout      *service.OnChainServiceImpl
	Confirmations *service.ConfirmationServiceImpl
}

// NewOnChain builds the ledger client, price feed and services. cache may be
// nil. The merchant address is checked here so a bad address fails at startup
// as well as on every request.
func NewOnChain(cfg *config.Config, cache ports.ConfirmationCache, log zerolog.Logger) (*OnChain, error) {
	ledger, err := solana.NewClient(solana.Config{
		RPCURL:               cfg.Ledger.RPCURL,
		Cluster:              cfg.Ledger.Cluster,
		Commitment:           cfg.Ledger.Commitment,
		CheckpointCommitment: cfg.Ledger.CheckpointCommitment,
		CheckpointValidity:   cfg.Ledger.CheckpointValidity,
		Timeout:              cfg.Ledger.Timeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("ledger client: %w", err)
	}
	if err := ledger.ValidateAddress(cfg.Merchant.Address); err != nil {
		return nil, fmt.Errorf("merchant.address: %w", err)
	}

	feed, err := NewPriceFeed(cfg.PriceFeed, log)
	if err != nil {
		return nil, err
	}

	buffer, err := cfg.Conversion.Buffer()
	if err != nil {
		return nil, err
	}
	converter, err := service.NewAmountConverter(buffer, solana.UnitsPerAsset)
	if err != nil {
		return nil, fmt.Errorf("amount converter: %w", err)
	}

	secret, err := TicketSecret(cfg, log)
	if err != nil {
		return nil, err
	}
	tickets := service.NewJWTTicketService(secret, cfg.Ticket.Issuer, cfg.Ticket.Grace)

	checkout := service.NewOnChainService(feed, converter, ledger, tickets, service.OnChainConfig{
		Pair:            cfg.PriceFeed.Pair,
		QuoteCurrency:   cfg.PriceFeed.QuoteCurrency,
		MerchantAddress: cfg.Merchant.Address,
		MerchantLabel:   cfg.Merchant.Label,
		MerchantMessage: cfg.Merchant.Message,
	}, log)

	confirmations := service.NewConfirmationService(ledger, cache, service.ConfirmationConfig{
		PollInterval:    cfg.Confirmation.PollInterval,
		MaxPollInterval: cfg.Confirmation.MaxPollInterval,
		DefaultTimeout:  cfg.Confirmation.DefaultTimeout,
		CacheTTL:        cfg.Confirmation.CacheTTL,
	}, log)

	return &OnChain{
		Ledger:        ledger,
		Feed:          feed,
		Converter:     converter,
		Tickets:       tickets,
		Checkout:      checkout,
		Confirmations: confirmations,
	}, nil
}

// NewPriceFeed selects the price feed for cfg.Mode. The fixed feed is only
// used when asked for explicitly.
func NewPriceFeed(cfg config.PriceFeedConfig, log zerolog.Logger) (PriceSource, error) {
	switch cfg.Mode {
	case config.PriceFeedModeHermes:
		return pricefeed.NewHermesClient(pricefeed.HermesOptions{
			Endpoint:     cfg.Endpoint,
			Feeds:        map[string]string{cfg.Pair: cfg.FeedID},
			HTTPClient:   &http.Client{Timeout: cfg.Timeout},
			MaxStaleness: cfg.MaxStaleness,
		}, log.With().Str("component", "pricefeed").Logger()), nil
	case config.PriceFeedModeFixed:
		price, err := decimal.NewFromString(strings.TrimSpace(cfg.FixedPrice))
		if err != nil {
			return nil, fmt.Errorf("price_feed.fixed_price: %w", err)
		}
		feed, err := pricefeed.NewFixedFeed(cfg.Pair, price)
		if err != nil {
			return nil, err
		}
		log.Warn().
			Str("pair", cfg.Pair).
			Str("price", price.String()).
			Msg("using FIXED sandbox price feed; quotes are not live")
		return feed, nil
	default:
		return nil, fmt.Errorf("unknown price_feed.mode %q", cfg.Mode)
	}
}

// TicketSecret returns the configured ticket secret. Outside release mode an
// empty secret is replaced by a random per-process one.
func TicketSecret(cfg *config.Config, log zerolog.Logger) (string, error) {
	if cfg.Ticket.Secret != "" {
		return cfg.Ticket.Secret, nil
	}
	if cfg.Server.Mode == "release" {
		return "", fmt.Errorf("ticket.secret is required in release mode")
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating ticket secret: %w", err)
	}
	log.Warn().Msg("ticket.secret not set; using a random secret, tickets will not survive a restart")
	return hex.EncodeToString(buf), nil
}
