package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// transferRequestScheme is the wallet URL scheme for transfer requests.
const transferRequestScheme = "solana"

// OnChainConfig holds the on-chain rail settings used by OnChainServiceImpl.
type OnChainConfig struct {
	Pair            string // e.g. SOL/USD
	QuoteCurrency   string // fiat currency the pair is quoted in
	MerchantAddress string
	MerchantLabel   string
	MerchantMessage string
}

// OnChainServiceImpl implements ports.OnChainCheckoutService.
type OnChainServiceImpl struct {
	feed      ports.PriceFeed
	converter *AmountConverter
	builder   *TransferBuilder
	tickets   ports.TicketService
	ledger    ports.LedgerClient
	cfg       OnChainConfig
	now       func() time.Time
	log       zerolog.Logger
}

// NewOnChainService creates a new OnChainServiceImpl.
func NewOnChainService(
	feed ports.PriceFeed,
	converter *AmountConverter,
	ledger ports.LedgerClient,
	tickets ports.TicketService,
	cfg OnChainConfig,
	log zerolog.Logger,
) *OnChainServiceImpl {
	cfg.QuoteCurrency = strings.ToUpper(cfg.QuoteCurrency)
	return &OnChainServiceImpl{
		feed:      feed,
		converter: converter,
		builder:   NewTransferBuilder(ledger, cfg.MerchantAddress, log),
		tickets:   tickets,
		ledger:    ledger,
		cfg:       cfg,
		now:       time.Now,
		log:       logger.Component(log, "onchain_checkout"),
	}
}

// Quote previews the conversion for a fiat amount without touching the ledger.
func (s *OnChainServiceImpl) Quote(ctx context.Context, req ports.QuoteRequest) (*ports.QuoteResult, error) {
	currency, err := s.checkFiat(req.FiatAmount, req.Currency)
	if err != nil {
		return nil, err
	}

	conv, err := s.convert(ctx, req.FiatAmount)
	if err != nil {
		return nil, err
	}

	return &ports.QuoteResult{
		Conversion:          conv,
		FiatAmount:          req.FiatAmount,
		Currency:            currency,
		HumanReadableAmount: s.converter.HumanReadable(conv.Quantity),
	}, nil
}

// CreateTransfer runs quote, conversion and descriptor construction for one
// checkout attempt. Any failure short-circuits; nothing is retried here.
func (s *OnChainServiceImpl) CreateTransfer(ctx context.Context, req domain.PaymentRequest) (*ports.TransferResult, error) {
	if req.Currency == "" {
		req.Currency = s.cfg.QuoteCurrency
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, err := s.checkFiat(req.FiatAmount, req.Currency); err != nil {
		return nil, err
	}
	// Address syntax is checked before the feed or the ledger are contacted.
	if err := s.builder.ValidatePayer(req.PayerAddress); err != nil {
		return nil, err
	}

	flow := domain.NewCheckoutFlow()

	conv, err := s.convert(ctx, req.FiatAmount)
	if err != nil {
		return nil, err
	}

	descriptor, err := s.builder.Build(ctx, req.PayerAddress, conv.Quantity)
	if err != nil {
		return nil, err
	}

	if _, err := flow.Fire(domain.EventDescriptorBuilt); err != nil {
		return nil, apperror.InternalError(err)
	}
	state, err := flow.Fire(domain.EventDescriptorDelivered)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	ticket, ticketExp, err := s.tickets.Issue(descriptor, state)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issuing checkout ticket: %w", err))
	}

	return &ports.TransferResult{
		Descriptor:          descriptor,
		Conversion:          conv,
		HumanReadableAmount: s.converter.HumanReadable(conv.Quantity),
		Ticket:              ticket,
		TicketExpiresAt:     ticketExp,
		State:               state,
	}, nil
}

// PaymentLink builds a wallet transfer-request URL paying the merchant the
// converted amount. Wallets build and sign the transfer themselves.
func (s *OnChainServiceImpl) PaymentLink(ctx context.Context, req ports.PaymentLinkRequest) (*ports.PaymentLinkResult, error) {
	if _, err := s.checkFiat(req.FiatAmount, req.Currency); err != nil {
		return nil, err
	}
	if err := s.ledger.ValidateAddress(s.cfg.MerchantAddress); err != nil {
		return nil, apperror.ErrInvalidAddress("merchant", err)
	}

	conv, err := s.convert(ctx, req.FiatAmount)
	if err != nil {
		return nil, err
	}

	memo := strings.TrimSpace(req.Memo)
	if memo == "" {
		memo = fmt.Sprintf("payment-%d", s.now().UnixMilli())
	}

	amount := fromUint64(conv.Quantity).Div(s.converter.unitsPerAsset)
	link := transferRequestURL(s.cfg.MerchantAddress, []queryParam{
		{"amount", amount.String()},
		{"label", s.cfg.MerchantLabel},
		{"message", s.cfg.MerchantMessage},
		{"memo", memo},
	})

	s.log.Info().
		Uint64("quantity", conv.Quantity).
		Str("source", string(conv.Quote.Source)).
		Msg("payment link created")

	return &ports.PaymentLinkResult{URL: link, Conversion: conv}, nil
}

// checkFiat validates the fiat side of a request and returns the normalized
// currency. Empty currency means the feed's quote currency.
func (s *OnChainServiceImpl) checkFiat(amount decimal.Decimal, currency string) (string, error) {
	if !amount.IsPositive() {
		return "", apperror.Validation(domain.ErrNonPositiveFiatAmount.Error())
	}
	if currency == "" {
		return s.cfg.QuoteCurrency, nil
	}
	if !domain.IsCurrencyCode(currency) {
		return "", apperror.Validation(domain.ErrInvalidCurrency.Error())
	}
	currency = strings.ToUpper(currency)
	if currency != s.cfg.QuoteCurrency {
		return "", apperror.Validation(fmt.Sprintf("currency %s is not supported, use %s", currency, s.cfg.QuoteCurrency))
	}
	return currency, nil
}

func (s *OnChainServiceImpl) convert(ctx context.Context, fiat decimal.Decimal) (domain.Conversion, error) {
	quote, err := s.feed.Quote(ctx, s.cfg.Pair)
	if err != nil {
		return domain.Conversion{}, keepAppError(err, apperror.ErrPriceFeedUnavailable)
	}
	if quote.Source == domain.QuoteSourceFixed {
		s.log.Warn().Str("pair", s.cfg.Pair).Msg("using sandbox fixed price")
	}

	conv, err := s.converter.Convert(fiat, quote)
	if err != nil {
		s.log.Error().Err(err).Str("fiat", fiat.String()).Msg("conversion rejected")
		return domain.Conversion{}, err
	}

	s.log.Info().
		Str("pair", s.cfg.Pair).
		Str("price", quote.RealizedPrice().String()).
		Str("buffered_price", conv.BufferedPrice.String()).
		Uint64("quantity", conv.Quantity).
		Msg("amount converted")

	return conv, nil
}

type queryParam struct {
	key, value string
}

// transferRequestURL encodes params in order with %20 for spaces, as wallets
// expect from encodeURIComponent-style links.
func transferRequestURL(recipient string, params []queryParam) string {
	var b strings.Builder
	b.WriteString(transferRequestScheme)
	b.WriteByte(':')
	b.WriteString(recipient)
	sep := byte('?')
	for _, p := range params {
		if p.value == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(url.QueryEscape(p.value), "+", "%20"))
		sep = '&'
	}
	return b.String()
}
