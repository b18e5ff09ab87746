package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"checkout-gateway/config"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentTransfers builds transfers for many payers at once. Every
// request must succeed with its own payer in the descriptor and the ticket.
func TestConcurrentTransfers(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	concurrency := 50
	payers := make([]string, concurrency)
	for i := range payers {
		payers[i] = solana.NewWallet().PublicKey().String()
	}

	type result struct {
		status int
		payer  string
		ticket string
		qty    float64
	}
	results := make([]result, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]interface{}{
				"fiat_amount":   "25",
				"payer_address": payers[idx],
			})
			resp, err := http.Post(app.server.URL+"/api/v1/onchain/transfers", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			var out struct {
				Data struct {
					Payer          string  `json:"payer"`
					CheckoutTicket string  `json:"checkout_ticket"`
					AssetQuantity  float64 `json:"asset_quantity"`
				} `json:"data"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&out)
			results[idx] = result{
				status: resp.StatusCode,
				payer:  out.Data.Payer,
				ticket: out.Data.CheckoutTicket,
				qty:    out.Data.AssetQuantity,
			}
		}(i)
	}
	wg.Wait()

	tickets := make(map[string]bool)
	for i, r := range results {
		require.Equal(t, http.StatusCreated, r.status, "request %d", i)
		assert.Equal(t, payers[i], r.payer)
		assert.Equal(t, float64(1243781095), r.qty)
		assert.False(t, tickets[r.ticket], "duplicate ticket")
		tickets[r.ticket] = true
	}
}

// TestConcurrentRateLimit fires more transfer requests than the per-minute
// budget from a single client. The Redis counter must admit exactly the budget.
func TestConcurrentRateLimit(t *testing.T) {
	// Stay clear of a fixed-window boundary.
	if s := time.Now().Second(); s >= 55 {
		time.Sleep(time.Duration(61-s) * time.Second)
	}

	limit := int64(10)
	app := newTestApp(t, withRateLimits(config.RateLimitConfig{Enabled: true, Transfers: limit}))
	defer app.close()

	concurrency := 40
	var allowed, limited int64

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]interface{}{
				"fiat_amount":   "1",
				"payer_address": solana.NewWallet().PublicKey().String(),
			})
			resp, err := http.Post(app.server.URL+"/api/v1/onchain/transfers", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				atomic.AddInt64(&allowed, 1)
			case http.StatusTooManyRequests:
				assert.NotEmpty(t, resp.Header.Get("Retry-After"))
				atomic.AddInt64(&limited, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
	assert.Equal(t, int64(concurrency)-limit, limited)

	// Quotes have no budget configured and are not limited.
	resp, err := http.Get(app.server.URL + "/api/v1/onchain/quote?fiat_amount=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestConcurrentConfirmationWaiters parks many waiters on one signature and
// then confirms it. Every waiter must observe the same terminal record.
func TestConcurrentConfirmationWaiters(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sig := testSignature(11)
	concurrency := 20
	statuses := make([]string, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			resp, err := http.Get(fmt.Sprintf("%s/api/v1/onchain/confirmations/%s?wait=2s", app.server.URL, sig))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			var out struct {
				Data struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&out)
			statuses[idx] = out.Data.Status
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	app.node.setStatus(sig, &rpc.SignatureStatusesResult{Slot: 77, ConfirmationStatus: rpc.ConfirmationStatusFinalized})
	wg.Wait()

	for i, s := range statuses {
		assert.Equal(t, "confirmed", s, "waiter %d", i)
	}
}
