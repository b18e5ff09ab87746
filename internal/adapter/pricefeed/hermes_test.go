package pricefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solFeedID = "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d"

var publishTime = time.Unix(1700000000, 0).UTC()

func newTestHermes(t *testing.T, status int, body string) (*HermesClient, *http.Request) {
	t.Helper()
	var seen http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewHermesClient(HermesOptions{
		Endpoint:     srv.URL + "/",
		Feeds:        map[string]string{"SOL/USD": "0x" + solFeedID},
		MaxStaleness: time.Minute,
		Now:          func() time.Time { return publishTime.Add(5 * time.Second) },
	}, zerolog.Nop())
	return c, &seen
}

func hermesBody(price, expo string) string {
	return `{"binary":{"encoding":"hex","data":["00"]},"parsed":[{"id":"` + solFeedID + `",` +
		`"price":{"price":` + price + `,"conf":"1234","expo":` + expo + `,"publish_time":1700000000},` +
		`"ema_price":{"price":"1","conf":"1","expo":-8,"publish_time":1700000000}}]}`
}

func TestHermesClient_Quote_Success(t *testing.T) {
	c, seen := newTestHermes(t, http.StatusOK, hermesBody(`"14217000000"`, "-8"))

	q, err := c.Quote(context.Background(), "sol/usd")
	require.NoError(t, err)

	assert.Equal(t, "SOL/USD", q.Pair)
	assert.True(t, q.BasePrice.Equal(decimal.NewFromInt(14217000000)))
	assert.Equal(t, int32(-8), q.Exponent)
	assert.True(t, q.RealizedPrice().Equal(decimal.RequireFromString("142.17")))
	assert.Equal(t, publishTime, q.ObservedAt)
	assert.Equal(t, domain.QuoteSourceLive, q.Source)

	assert.Equal(t, "/v2/updates/price/latest", seen.URL.Path)
	assert.Equal(t, "0x"+solFeedID, seen.URL.Query().Get("ids[]"))
	assert.Equal(t, "true", seen.URL.Query().Get("parsed"))
}

func TestHermesClient_Quote_NumericPrice(t *testing.T) {
	c, _ := newTestHermes(t, http.StatusOK, hermesBody(`2000`, "-2"))

	q, err := c.Quote(context.Background(), "SOL/USD")
	require.NoError(t, err)
	assert.True(t, q.RealizedPrice().Equal(decimal.NewFromInt(20)))
}

func TestHermesClient_Quote_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-2xx", http.StatusBadGateway, `{"error":"upstream"}`},
		{"not json", http.StatusOK, `<html>`},
		{"parsed missing", http.StatusOK, `{"binary":{"encoding":"hex","data":[]}}`},
		{"parsed empty", http.StatusOK, `{"parsed":[]}`},
		{"other feed", http.StatusOK, `{"parsed":[{"id":"e62df6c8b4a85fe1a67db44dc12de5db330f7ac66b72dc658afedf0f4a415b43","price":{"price":"1","expo":0,"publish_time":1700000000}}]}`},
		{"no price object", http.StatusOK, `{"parsed":[{"id":"` + solFeedID + `"}]}`},
		{"price missing", http.StatusOK, hermesBody(`null`, "-8")},
		{"price not a number", http.StatusOK, hermesBody(`"abc"`, "-8")},
		{"zero price", http.StatusOK, hermesBody(`"0"`, "-8")},
		{"negative price", http.StatusOK, hermesBody(`"-14217000000"`, "-8")},
		{"fractional expo", http.StatusOK, hermesBody(`"14217000000"`, "-8.5")},
		{"expo missing", http.StatusOK, hermesBody(`"14217000000"`, "null")},
		{"expo out of range", http.StatusOK, hermesBody(`"14217000000"`, "-99")},
		{"no publish time", http.StatusOK, `{"parsed":[{"id":"` + solFeedID + `","price":{"price":"1","expo":0}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestHermes(t, tt.status, tt.body)

			q, err := c.Quote(context.Background(), "SOL/USD")
			assert.Nil(t, q)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.CodePriceFeedUnavailable), "got %v", err)
		})
	}
}

func TestHermesClient_Quote_Stale(t *testing.T) {
	c, _ := newTestHermes(t, http.StatusOK, hermesBody(`"14217000000"`, "-8"))
	c.now = func() time.Time { return publishTime.Add(10 * time.Minute) }

	_, err := c.Quote(context.Background(), "SOL/USD")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePriceFeedUnavailable))
}

func TestHermesClient_Quote_UnknownPair(t *testing.T) {
	c, _ := newTestHermes(t, http.StatusOK, hermesBody(`"1"`, "0"))

	_, err := c.Quote(context.Background(), "BTC/USD")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePriceFeedUnavailable))
}

type failingHTTPClient struct{}

func (failingHTTPClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestHermesClient_Quote_TransportError(t *testing.T) {
	c := NewHermesClient(HermesOptions{
		Endpoint:   "http://hermes.invalid",
		Feeds:      map[string]string{"SOL/USD": solFeedID},
		HTTPClient: failingHTTPClient{},
	}, zerolog.Nop())

	_, err := c.Quote(context.Background(), "SOL/USD")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePriceFeedUnavailable))
	assert.Error(t, c.Ping(context.Background()))
	assert.Equal(t, "pyth-hermes", c.Name())
}

func TestFixedFeed(t *testing.T) {
	_, err := NewFixedFeed("SOL/USD", decimal.Zero)
	assert.Error(t, err)

	f, err := NewFixedFeed("sol/usd", decimal.NewFromInt(20))
	require.NoError(t, err)

	q, err := f.Quote(context.Background(), "SOL/USD")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSourceFixed, q.Source)
	assert.True(t, q.RealizedPrice().Equal(decimal.NewFromInt(20)))
	assert.NoError(t, q.Validate())

	_, err = f.Quote(context.Background(), "BTC/USD")
	assert.Error(t, err)
	assert.NoError(t, f.Ping(context.Background()))
}
