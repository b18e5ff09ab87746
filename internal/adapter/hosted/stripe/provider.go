package stripe

import (
	"context"
	"errors"
	"net/http"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Config configures the Stripe Checkout provider.
type Config struct {
	SecretKey          string
	PaymentMethodTypes []string
	ProductName        string
	ProductDescription string
}

// bankPermissions are requested from Financial Connections for ACH payments.
var bankPermissions = []string{"payment_method", "balances"}

// Provider implements ports.HostedPaymentProvider with Stripe Checkout.
type Provider struct {
	api *client.API
	cfg Config
	log zerolog.Logger
}

// NewProvider creates a Stripe provider. backends may be nil to use Stripe's
// default endpoints.
func NewProvider(cfg Config, backends *stripe.Backends, log zerolog.Logger) (*Provider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if len(cfg.PaymentMethodTypes) == 0 {
		cfg.PaymentMethodTypes = []string{"card"}
	}
	if cfg.ProductName == "" {
		cfg.ProductName = "Payment"
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, backends)

	return &Provider{
		api: api,
		cfg: cfg,
		log: log.With().Str("component", "stripe").Logger(),
	}, nil
}

// CreateSession creates a single-line-item payment session.
func (p *Provider) CreateSession(ctx context.Context, in ports.HostedSessionParams) (*domain.HostedSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice(p.cfg.PaymentMethodTypes),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.cfg.ProductName),
						Description: stripe.String(p.cfg.ProductDescription),
					},
					UnitAmount: stripe.Int64(in.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		SuccessURL:               stripe.String(in.SuccessURL),
		CancelURL:                stripe.String(in.CancelURL),
	}
	if p.acceptsBankAccounts() {
		params.PaymentMethodOptions = &stripe.CheckoutSessionPaymentMethodOptionsParams{
			USBankAccount: &stripe.CheckoutSessionPaymentMethodOptionsUSBankAccountParams{
				FinancialConnections: &stripe.CheckoutSessionPaymentMethodOptionsUSBankAccountFinancialConnectionsParams{
					Permissions: stripe.StringSlice(bankPermissions),
				},
			},
		}
	}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		p.log.Warn().Err(err).Int64("amount", in.AmountMinor).Msg("stripe session creation failed")
		return nil, providerError(err)
	}
	return toDomain(s), nil
}

// GetSession retrieves a session. Unknown ids map to ports.ErrSessionNotFound.
func (p *Provider) GetSession(ctx context.Context, sessionID string) (*domain.HostedSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && (se.Code == stripe.ErrorCodeResourceMissing || se.HTTPStatusCode == http.StatusNotFound) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, providerError(err)
	}
	return toDomain(s), nil
}

func (p *Provider) acceptsBankAccounts() bool {
	for _, t := range p.cfg.PaymentMethodTypes {
		if t == "us_bank_account" {
			return true
		}
	}
	return false
}

// providerError keeps Stripe's user-facing message.
func providerError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return errors.New(se.Msg)
	}
	return err
}

func toDomain(s *stripe.CheckoutSession) *domain.HostedSession {
	out := &domain.HostedSession{
		ID:            s.ID,
		RedirectURL:   s.URL,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
