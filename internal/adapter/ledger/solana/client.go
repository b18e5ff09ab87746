package solana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

// UnitsPerAsset is the number of lamports in one SOL. Transfers are
// denominated in lamports.
const UnitsPerAsset = int64(solana.LAMPORTS_PER_SOL)

// RPC is the subset of the Solana JSON-RPC API used by Client. Signature
// statuses go through RPCCallForInto so the ledger error keeps its wire bytes.
type RPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
	GetBlockTime(ctx context.Context, block uint64) (*solana.UnixTimeSeconds, error)
	GetHealth(ctx context.Context) (string, error)
	RPCCallForInto(ctx context.Context, out interface{}, method string, params []interface{}) error
}

// signatureStatuses is the getSignatureStatuses result with err left raw.
type signatureStatuses struct {
	Value []*signatureStatus `json:"value"`
}

type signatureStatus struct {
	Slot               uint64                     `json:"slot"`
	Confirmations      *uint64                    `json:"confirmations"`
	Err                json.RawMessage            `json:"err"`
	ConfirmationStatus rpc.ConfirmationStatusType `json:"confirmationStatus"`
}

func (st *signatureStatus) failed() bool {
	return len(st.Err) > 0 && string(st.Err) != "null"
}

// Config configures the ledger client.
type Config struct {
	RPCURL               string
	Cluster              string
	Commitment           string // finality target for confirmations: confirmed or finalized
	CheckpointCommitment string // commitment for getLatestBlockhash
	CheckpointValidity   time.Duration
	Timeout              time.Duration
}

// Client implements ports.LedgerClient over Solana JSON-RPC.
type Client struct {
	rpc                  RPC
	cluster              string
	commitment           rpc.CommitmentType
	checkpointCommitment rpc.CommitmentType
	validity             time.Duration
	timeout              time.Duration
	now                  func() time.Time
	log                  zerolog.Logger
}

// NewClient creates a ledger client for cfg.RPCURL.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("solana rpc url is required")
	}
	return NewClientWithRPC(rpc.New(cfg.RPCURL), cfg, log)
}

// NewClientWithRPC creates a ledger client over an existing RPC implementation.
func NewClientWithRPC(api RPC, cfg Config, log zerolog.Logger) (*Client, error) {
	commitment, err := parseCommitment(cfg.Commitment, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, err
	}
	if commitment == rpc.CommitmentProcessed {
		return nil, errors.New("confirmation commitment must be confirmed or finalized")
	}
	cpCommitment, err := parseCommitment(cfg.CheckpointCommitment, rpc.CommitmentFinalized)
	if err != nil {
		return nil, err
	}
	if cfg.CheckpointValidity <= 0 {
		cfg.CheckpointValidity = 60 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		rpc:                  api,
		cluster:              cfg.Cluster,
		commitment:           commitment,
		checkpointCommitment: cpCommitment,
		validity:             cfg.CheckpointValidity,
		timeout:              cfg.Timeout,
		now:                  time.Now,
		log:                  log.With().Str("component", "solana").Str("cluster", cfg.Cluster).Logger(),
	}, nil
}

func parseCommitment(s string, def rpc.CommitmentType) (rpc.CommitmentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment %q", s)
	}
}

// ValidateAddress checks that addr is a base58 ed25519 public key.
func (c *Client) ValidateAddress(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("address is empty")
	}
	if _, err := solana.PublicKeyFromBase58(addr); err != nil {
		return fmt.Errorf("not a base58 public key: %w", err)
	}
	return nil
}

// ValidateSignature checks that sig is a base58 transaction signature.
func (c *Client) ValidateSignature(sig string) error {
	if strings.TrimSpace(sig) == "" {
		return errors.New("signature is empty")
	}
	if _, err := solana.SignatureFromBase58(sig); err != nil {
		return fmt.Errorf("not a base58 signature: %w", err)
	}
	return nil
}

// LatestCheckpoint fetches a recent blockhash. The checkpoint expires after
// the configured validity window.
func (c *Client) LatestCheckpoint(ctx context.Context) (*domain.Checkpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.rpc.GetLatestBlockhash(ctx, c.checkpointCommitment)
	if err != nil {
		return nil, apperror.ErrLedgerUnreachable(fmt.Errorf("getLatestBlockhash: %w", err))
	}
	if res == nil || res.Value == nil || res.Value.Blockhash == (solana.Hash{}) {
		return nil, apperror.ErrLedgerUnreachable(errors.New("getLatestBlockhash returned no blockhash"))
	}

	now := c.now().UTC()
	return &domain.Checkpoint{
		BlockID:         res.Value.Blockhash.String(),
		LastValidHeight: res.Value.LastValidBlockHeight,
		ObtainedAt:      now,
		ExpiresAt:       now.Add(c.validity),
	}, nil
}

// EncodeTransfer builds a system transfer from payer to payee with the payer
// as fee payer and serializes it with zero-filled signature slots.
func (c *Client) EncodeTransfer(payer, payee string, quantity uint64, cp domain.Checkpoint) (*domain.TransferDescriptor, error) {
	if quantity == 0 {
		return nil, domain.ErrZeroQuantity
	}
	from, err := solana.PublicKeyFromBase58(payer)
	if err != nil {
		return nil, fmt.Errorf("payer: %w", err)
	}
	to, err := solana.PublicKeyFromBase58(payee)
	if err != nil {
		return nil, fmt.Errorf("payee: %w", err)
	}
	blockhash, err := solana.HashFromBase58(cp.BlockID)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(quantity, from, to).Build(),
		},
		blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, fmt.Errorf("building transaction: %w", err)
	}

	// The wallet fills these slots when it signs.
	slots := int(tx.Message.Header.NumRequiredSignatures)
	tx.Signatures = make([]solana.Signature, slots)

	wire, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("serializing transaction: %w", err)
	}

	feePayer := tx.Message.AccountKeys[0]
	return &domain.TransferDescriptor{
		Payer:          payer,
		Payee:          payee,
		AssetQuantity:  quantity,
		Checkpoint:     cp,
		FeePayer:       feePayer.String(),
		SignatureSlots: slots,
		Serialized:     wire,
	}, nil
}

// SignatureStatus looks up a signature once, searching transaction history.
// Signatures the node does not know, or that have not reached the configured
// commitment, are pending. Unknown signatures are also marked not found.
func (c *Client) SignatureStatus(ctx context.Context, signatureID string) (*domain.ConfirmationRecord, error) {
	sig, err := solana.SignatureFromBase58(signatureID)
	if err != nil {
		return nil, apperror.Validation("invalid signature: " + err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res *signatureStatuses
	params := []interface{}{
		[]string{sig.String()},
		rpc.M{"searchTransactionHistory": true},
	}
	if err := c.rpc.RPCCallForInto(ctx, &res, "getSignatureStatuses", params); err != nil {
		return nil, apperror.ErrLedgerUnreachable(fmt.Errorf("getSignatureStatuses: %w", err))
	}

	rec := &domain.ConfirmationRecord{
		SignatureID: signatureID,
		Status:      domain.FinalityPending,
		ObservedAt:  c.now().UTC(),
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		rec.NotFound = true
		return rec, nil
	}

	st := res.Value[0]
	rec.Slot = st.Slot
	if !c.reached(st) {
		return rec, nil
	}

	if st.failed() {
		rec.Status = domain.FinalityFailed
		rec.LedgerError = append(json.RawMessage(nil), st.Err...)
	} else {
		rec.Status = domain.FinalityConfirmed
	}
	rec.BlockTime = c.blockTime(ctx, st.Slot)

	return rec, nil
}

// BlockHeight returns the block height at the checkpoint commitment, the same
// commitment the checkpoint's last valid height was read at.
func (c *Client) BlockHeight(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	height, err := c.rpc.GetBlockHeight(ctx, c.checkpointCommitment)
	if err != nil {
		return 0, apperror.ErrLedgerUnreachable(fmt.Errorf("getBlockHeight: %w", err))
	}
	return height, nil
}

// reached reports whether st is at or above the configured commitment.
func (c *Client) reached(st *signatureStatus) bool {
	status := st.ConfirmationStatus
	if status == "" && st.Confirmations == nil {
		// Older nodes omit confirmationStatus; nil confirmations means rooted.
		status = rpc.ConfirmationStatusFinalized
	}
	switch c.commitment {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	default:
		return status == rpc.ConfirmationStatusConfirmed || status == rpc.ConfirmationStatusFinalized
	}
}

// blockTime is best effort; nodes may not have it for recent slots.
func (c *Client) blockTime(ctx context.Context, slot uint64) *time.Time {
	bt, err := c.rpc.GetBlockTime(ctx, slot)
	if err != nil || bt == nil {
		if err != nil {
			c.log.Debug().Err(err).Uint64("slot", slot).Msg("block time unavailable")
		}
		return nil
	}
	t := time.Unix(int64(*bt), 0).UTC()
	return &t
}

// Name returns the dependency name.
func (c *Client) Name() string {
	return "solana-rpc"
}

// Ping checks node health.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	health, err := c.rpc.GetHealth(ctx)
	if err != nil {
		return err
	}
	if health != "ok" {
		return fmt.Errorf("node unhealthy: %s", health)
	}
	return nil
}
