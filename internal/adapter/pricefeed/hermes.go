package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxResponseBytes caps the Hermes response body.
const maxResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HermesClient implements ports.PriceFeed against the Pyth Hermes price service.
type HermesClient struct {
	endpoint     string
	feeds        map[string]string // pair -> feed id
	httpClient   HTTPClient
	maxStaleness time.Duration
	now          func() time.Time
	log          zerolog.Logger
}

// HermesOptions configures a HermesClient.
type HermesOptions struct {
	Endpoint     string
	Feeds        map[string]string
	HTTPClient   HTTPClient
	MaxStaleness time.Duration // 0 disables the staleness check
	Now          func() time.Time
}

// NewHermesClient creates a Hermes-backed price feed.
func NewHermesClient(opts HermesOptions, log zerolog.Logger) *HermesClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	feeds := make(map[string]string, len(opts.Feeds))
	for pair, id := range opts.Feeds {
		feeds[strings.ToUpper(pair)] = normalizeFeedID(id)
	}
	return &HermesClient{
		endpoint:     strings.TrimRight(opts.Endpoint, "/"),
		feeds:        feeds,
		httpClient:   httpClient,
		maxStaleness: opts.MaxStaleness,
		now:          now,
		log:          log,
	}
}

// hermesResponse mirrors GET /v2/updates/price/latest. Numeric fields are kept
// raw so they can be validated before any arithmetic.
type hermesResponse struct {
	Parsed []hermesParsed `json:"parsed"`
}

type hermesParsed struct {
	ID    string       `json:"id"`
	Price *hermesPrice `json:"price"`
}

type hermesPrice struct {
	Price       json.RawMessage `json:"price"`
	Expo        json.RawMessage `json:"expo"`
	PublishTime int64           `json:"publish_time"`
}

// Quote fetches the latest price for pair. Any missing, malformed or
// non-positive value fails with PriceFeedUnavailable; nothing is substituted.
func (c *HermesClient) Quote(ctx context.Context, pair string) (*domain.PriceQuote, error) {
	feedID, ok := c.feeds[strings.ToUpper(pair)]
	if !ok {
		return nil, apperror.ErrPriceFeedUnavailable(fmt.Errorf("no feed configured for pair %q", pair))
	}

	body, err := c.fetch(ctx, feedID)
	if err != nil {
		return nil, apperror.ErrPriceFeedUnavailable(err)
	}

	quote, err := c.parse(body, pair, feedID)
	if err != nil {
		c.log.Warn().Err(err).Str("pair", pair).Msg("rejecting price feed response")
		return nil, apperror.ErrPriceFeedUnavailable(err)
	}

	c.log.Debug().
		Str("pair", pair).
		Str("price", quote.RealizedPrice().String()).
		Time("observed_at", quote.ObservedAt).
		Msg("price quote fetched")

	return quote, nil
}

// Name returns the dependency name.
func (c *HermesClient) Name() string {
	return "pyth-hermes"
}

// Ping fetches a quote for any configured pair.
func (c *HermesClient) Ping(ctx context.Context) error {
	for pair := range c.feeds {
		_, err := c.Quote(ctx, pair)
		return err
	}
	return errors.New("no price feeds configured")
}

func (c *HermesClient) fetch(ctx context.Context, feedID string) ([]byte, error) {
	q := url.Values{}
	q.Set("ids[]", "0x"+feedID)
	q.Set("parsed", "true")
	reqURL := c.endpoint + "/v2/updates/price/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building hermes request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hermes request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading hermes response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("hermes returned status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *HermesClient) parse(body []byte, pair, feedID string) (*domain.PriceQuote, error) {
	var hr hermesResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, fmt.Errorf("decoding hermes response: %w", err)
	}

	var entry *hermesParsed
	for i := range hr.Parsed {
		if normalizeFeedID(hr.Parsed[i].ID) == feedID {
			entry = &hr.Parsed[i]
			break
		}
	}
	if entry == nil {
		return nil, errors.New("hermes response has no parsed entry for feed")
	}
	if entry.Price == nil {
		return nil, errors.New("hermes entry has no price object")
	}

	base, err := parseRawPrice(entry.Price.Price)
	if err != nil {
		return nil, err
	}
	expo, err := parseExponent(entry.Price.Expo)
	if err != nil {
		return nil, err
	}
	if entry.Price.PublishTime <= 0 {
		return nil, errors.New("hermes price has no publish_time")
	}

	quote := &domain.PriceQuote{
		Pair:       strings.ToUpper(pair),
		BasePrice:  base,
		Exponent:   expo,
		ObservedAt: time.Unix(entry.Price.PublishTime, 0).UTC(),
		Source:     domain.QuoteSourceLive,
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	if c.maxStaleness > 0 {
		if age := c.now().Sub(quote.ObservedAt); age > c.maxStaleness {
			return nil, fmt.Errorf("price is stale: observed %s ago", age.Truncate(time.Second))
		}
	}
	return quote, nil
}

// parseRawPrice accepts the integer price either as a JSON string (Hermes'
// encoding) or a bare JSON number.
func parseRawPrice(raw json.RawMessage) (decimal.Decimal, error) {
	s, err := rawScalar(raw, "price")
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q is not a number: %w", s, err)
	}
	return d, nil
}

func parseExponent(raw json.RawMessage) (int32, error) {
	s, err := rawScalar(raw, "expo")
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("expo %q is not an integer: %w", s, err)
	}
	return int32(n), nil
}

func rawScalar(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("hermes price is missing %s", field)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding %s: %w", field, err)
		}
		return strings.TrimSpace(s), nil
	}
	return string(raw), nil
}

func normalizeFeedID(id string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "0x"))
}
