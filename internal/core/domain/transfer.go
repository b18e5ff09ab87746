package domain

import (
	"encoding/base64"
	"errors"
	"time"
)

var (
	ErrZeroQuantity     = errors.New("asset quantity must be at least one smallest unit")
	ErrFeePayerMismatch = errors.New("fee payer must be the payer")
)

// Checkpoint is a recent ledger reference value that bounds how long an
// unsigned transfer stays valid for broadcast.
type Checkpoint struct {
	BlockID         string    `json:"block_id"`
	LastValidHeight uint64    `json:"last_valid_height"`
	ObtainedAt      time.Time `json:"obtained_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// LapsedAt reports whether the ledger has moved past the last block height at
// which a transfer bound to c can still be processed.
func (c Checkpoint) LapsedAt(blockHeight uint64) bool {
	return c.LastValidHeight > 0 && blockHeight > c.LastValidHeight
}

// TransferDescriptor is an unsigned transfer ready to cross to the client.
type TransferDescriptor struct {
	Payer          string     `json:"payer"`
	Payee          string     `json:"payee"`
	AssetQuantity  uint64     `json:"asset_quantity"`
	Checkpoint     Checkpoint `json:"checkpoint"`
	FeePayer       string     `json:"fee_payer"`
	SignatureSlots int        `json:"signature_slots"` // zero-filled slots awaiting the wallet
	Serialized     []byte     `json:"-"`
}

// Validate enforces the descriptor invariants.
func (d TransferDescriptor) Validate() error {
	if d.AssetQuantity == 0 {
		return ErrZeroQuantity
	}
	if d.FeePayer != d.Payer {
		return ErrFeePayerMismatch
	}
	return nil
}

// Base64 returns the serialized wire form.
func (d TransferDescriptor) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Serialized)
}
