package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/logger"

	"github.com/rs/zerolog"
)

var errHostedDisabled = errors.New("hosted payments are not configured")

// HostedConfig holds redirect settings for hosted sessions.
type HostedConfig struct {
	BaseURL         string // public origin; falls back to the request Origin when empty
	SuccessPath     string
	CancelPath      string
	DefaultCurrency string
}

// HostedServiceImpl implements ports.HostedCheckoutService.
type HostedServiceImpl struct {
	provider ports.HostedPaymentProvider // nil when the hosted rail is disabled
	cfg      HostedConfig
	log      zerolog.Logger
}

// NewHostedService creates a new HostedServiceImpl.
func NewHostedService(provider ports.HostedPaymentProvider, cfg HostedConfig, log zerolog.Logger) *HostedServiceImpl {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "usd"
	}
	return &HostedServiceImpl{
		provider: provider,
		cfg:      cfg,
		log:      logger.Component(log, "hosted_checkout"),
	}
}

// CreateSession opens a hosted session for an amount in minor units.
func (s *HostedServiceImpl) CreateSession(ctx context.Context, req ports.HostedSessionRequest) (*domain.HostedSession, error) {
	if req.AmountMinor <= 0 {
		return nil, apperror.Validation("amount must be a positive number of minor units")
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}
	if !domain.IsCurrencyCode(currency) {
		return nil, apperror.Validation(domain.ErrInvalidCurrency.Error())
	}

	origin, err := s.origin(req.Origin)
	if err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, apperror.ErrHostedProvider(errHostedDisabled)
	}

	sess, err := s.provider.CreateSession(ctx, ports.HostedSessionParams{
		AmountMinor: req.AmountMinor,
		Currency:    currency,
		SuccessURL:  origin + s.cfg.SuccessPath,
		CancelURL:   origin + s.cfg.CancelPath,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("amount", req.AmountMinor).Msg("hosted session creation failed")
		return nil, keepAppError(err, apperror.ErrHostedProvider)
	}

	s.log.Info().
		Str("session_id", sess.ID).
		Int64("amount", req.AmountMinor).
		Str("currency", currency).
		Msg("hosted session created")

	return sess, nil
}

// GetSession retrieves a hosted session by id.
func (s *HostedServiceImpl) GetSession(ctx context.Context, sessionID string) (*domain.HostedSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperror.Validation("session_id is required")
	}
	if s.provider == nil {
		return nil, apperror.ErrHostedProvider(errHostedDisabled)
	}

	sess, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperror.ErrNotFound("Session")
		}
		return nil, keepAppError(err, apperror.ErrHostedProvider)
	}
	return sess, nil
}

func (s *HostedServiceImpl) origin(requestOrigin string) (string, error) {
	origin := s.cfg.BaseURL
	if origin == "" {
		origin = requestOrigin
	}
	u, err := url.Parse(origin)
	if origin == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return "", apperror.Validation("request origin is required to build redirect URLs")
	}
	return strings.TrimRight(origin, "/"), nil
}
