package domain

import (
	"encoding/json"
	"time"
)

// FinalityStatus is the ledger finality of a broadcast transfer.
type FinalityStatus string

const (
	FinalityPending   FinalityStatus = "pending"
	FinalityConfirmed FinalityStatus = "confirmed"
	FinalityFailed    FinalityStatus = "failed"
	// FinalityUnknown is only produced when a bounded wait times out.
	FinalityUnknown FinalityStatus = "unknown"
)

// IsTerminal returns true for confirmed and failed. Terminal records are never mutated.
func (s FinalityStatus) IsTerminal() bool {
	return s == FinalityConfirmed || s == FinalityFailed
}

// ConfirmationRecord is the observed state of a transaction signature.
type ConfirmationRecord struct {
	SignatureID string          `json:"signature_id"`
	Status      FinalityStatus  `json:"status"`
	LedgerError json.RawMessage `json:"ledger_error,omitempty"` // verbatim ledger error when failed
	Slot        uint64          `json:"slot,omitempty"`
	BlockTime   *time.Time      `json:"block_time,omitempty"`
	ObservedAt  time.Time       `json:"observed_at"`

	// NotFound is set when the node has no status for the signature at any
	// commitment. Only pending records can be not found.
	NotFound bool `json:"-"`
}

// IsTerminal returns true if the record will not change on further polling.
func (r *ConfirmationRecord) IsTerminal() bool {
	return r.Status.IsTerminal()
}
