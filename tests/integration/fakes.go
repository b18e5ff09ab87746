package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// --- Fake Solana node ---

// fakeNode implements the ledger client's RPC subset in memory.
type fakeNode struct {
	mu        sync.RWMutex
	blockhash solana.Hash
	statuses  map[solana.Signature]*rpc.SignatureStatusesResult
	height    uint64
	down      bool
	lookups   int64
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		blockhash: solana.Hash(solana.NewWallet().PublicKey()),
		statuses:  make(map[solana.Signature]*rpc.SignatureStatusesResult),
		height:    3000,
	}
}

func (n *fakeNode) setStatus(sig solana.Signature, st *rpc.SignatureStatusesResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses[sig] = st
}

func (n *fakeNode) setDown(down bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.down = down
}

func (n *fakeNode) lookupCount() int64 {
	return atomic.LoadInt64(&n.lookups)
}

func (n *fakeNode) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.down {
		return nil, errors.New("connection refused")
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: n.blockhash, LastValidBlockHeight: 3090},
	}, nil
}

// RPCCallForInto serves getSignatureStatuses by encoding the stored statuses
// the way a node would.
func (n *fakeNode) RPCCallForInto(_ context.Context, out interface{}, method string, params []interface{}) error {
	if method != "getSignatureStatuses" {
		return fmt.Errorf("method %s not found", method)
	}
	atomic.AddInt64(&n.lookups, 1)
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.down {
		return errors.New("connection refused")
	}

	sigs, _ := params[0].([]string)
	res := &rpc.GetSignatureStatusesResult{}
	for _, s := range sigs {
		sig, err := solana.SignatureFromBase58(s)
		if err != nil {
			return err
		}
		res.Value = append(res.Value, n.statuses[sig])
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (n *fakeNode) GetBlockHeight(_ context.Context, _ rpc.CommitmentType) (uint64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.down {
		return 0, errors.New("connection refused")
	}
	return n.height, nil
}

func (n *fakeNode) setHeight(h uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.height = h
}

func (n *fakeNode) GetBlockTime(_ context.Context, _ uint64) (*solana.UnixTimeSeconds, error) {
	bt := solana.UnixTimeSeconds(1700000000)
	return &bt, nil
}

func (n *fakeNode) GetHealth(_ context.Context) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.down {
		return "", errors.New("connection refused")
	}
	return "ok", nil
}

// --- Fake hosted provider ---

type fakeHostedProvider struct {
	mu       sync.Mutex
	sessions map[string]*domain.HostedSession
	params   []ports.HostedSessionParams
}

func newFakeHostedProvider() *fakeHostedProvider {
	return &fakeHostedProvider{sessions: make(map[string]*domain.HostedSession)}
}

func (p *fakeHostedProvider) CreateSession(_ context.Context, params ports.HostedSessionParams) (*domain.HostedSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := fmt.Sprintf("cs_test_%d", len(p.sessions)+1)
	s := &domain.HostedSession{
		ID:            id,
		RedirectURL:   "https://checkout.example.com/pay/" + id,
		AmountTotal:   params.AmountMinor,
		Currency:      params.Currency,
		Status:        "open",
		PaymentStatus: "unpaid",
	}
	p.sessions[id] = s
	p.params = append(p.params, params)
	return s, nil
}

func (p *fakeHostedProvider) GetSession(_ context.Context, sessionID string) (*domain.HostedSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[sessionID]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

// --- In-memory audit repo ---

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *inMemoryAuditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	return nil
}

func (r *inMemoryAuditRepo) all() []*domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.AuditLog(nil), r.entries...)
}
