package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTicketService implements ports.TicketService using HS256 JWT. The ticket
// carries the checkout flow between requests so the server holds no state.
type JWTTicketService struct {
	secret []byte
	issuer string
	grace  time.Duration
	now    func() time.Time
}

// NewJWTTicketService creates a new ticket service. Tickets stay valid for
// grace past their checkpoint expiry so a late confirmation can still report
// the flow state.
func NewJWTTicketService(secret, issuer string, grace time.Duration) *JWTTicketService {
	return &JWTTicketService{
		secret: []byte(secret),
		issuer: issuer,
		grace:  grace,
		now:    time.Now,
	}
}

// Issue signs a ticket for descriptor d in the given state.
func (s *JWTTicketService) Issue(d *domain.TransferDescriptor, state domain.CheckoutState) (string, time.Time, error) {
	if d == nil {
		return "", time.Time{}, errors.New("nil descriptor")
	}
	if !state.Valid() {
		return "", time.Time{}, fmt.Errorf("invalid checkout state %q", state)
	}

	now := s.now()
	expiresAt := d.Checkpoint.ExpiresAt.Add(s.grace)
	if !expiresAt.After(now) {
		expiresAt = now.Add(s.grace)
	}

	claims := jwt.MapClaims{
		"sub":            d.Payer,
		"payee":          d.Payee,
		"qty":            strconv.FormatUint(d.AssetQuantity, 10),
		"checkpoint":     d.Checkpoint.BlockID,
		"checkpoint_lvh": strconv.FormatUint(d.Checkpoint.LastValidHeight, 10),
		"checkpoint_exp": d.Checkpoint.ExpiresAt.Unix(),
		"state":          string(state),
		"iat":            now.Unix(),
		"exp":            expiresAt.Unix(),
		"iss":            s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing ticket: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Parse validates a ticket and returns its claims.
func (s *JWTTicketService) Parse(tokenString string) (*ports.TicketClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parsing ticket: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid ticket claims")
	}

	payer, _ := claims["sub"].(string)
	payee, _ := claims["payee"].(string)
	checkpoint, _ := claims["checkpoint"].(string)
	if payer == "" || payee == "" || checkpoint == "" {
		return nil, errors.New("ticket is missing transfer claims")
	}

	qtyStr, _ := claims["qty"].(string)
	qty, err := strconv.ParseUint(qtyStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity in ticket: %w", err)
	}

	cpExp, ok := claims["checkpoint_exp"].(float64)
	if !ok {
		return nil, errors.New("missing checkpoint expiry claim")
	}

	// Tickets without a height never lapse by height.
	var lastValid uint64
	if lvh, ok := claims["checkpoint_lvh"].(string); ok {
		lastValid, err = strconv.ParseUint(lvh, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid checkpoint height in ticket: %w", err)
		}
	}

	stateStr, _ := claims["state"].(string)
	state := domain.CheckoutState(stateStr)
	if !state.Valid() {
		return nil, fmt.Errorf("invalid checkout state %q in ticket", stateStr)
	}

	return &ports.TicketClaims{
		Payer:               payer,
		Payee:               payee,
		Quantity:            qty,
		CheckpointID:        checkpoint,
		LastValidHeight:     lastValid,
		CheckpointExpiresAt: time.Unix(int64(cpExp), 0).UTC(),
		State:               state,
	}, nil
}
