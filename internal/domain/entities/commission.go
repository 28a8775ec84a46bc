package entities

import (
	"time"

	"github.com/google/uuid"
)

// CommissionEntry represents one ledger row guaranteeing exactly-once payout.
// PurchaseID is unique: a retried confirmation can never credit twice.
type CommissionEntry struct {
	ID         uuid.UUID `json:"id"`
	PurchaseID uuid.UUID `json:"purchaseId"`
	AgentID    uuid.UUID `json:"agentId"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
}
