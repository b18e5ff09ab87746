package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionHostedSession AuditAction = "HOSTED_SESSION_CREATED"
	AuditActionTransferBuilt AuditAction = "TRANSFER_BUILT"
	AuditActionPaymentLink   AuditAction = "PAYMENT_LINK_CREATED"
)

// AuditLog records a single audited request. It holds request metadata only,
// never amounts, addresses or signatures.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	RequestID    string      `json:"request_id"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
