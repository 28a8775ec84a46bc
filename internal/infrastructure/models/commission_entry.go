package models

import (
	"time"

	"github.com/google/uuid"
)

// CommissionEntry rows are append-only. The unique index on purchase_id is the
// exactly-once guarantee for commission payout.
type CommissionEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AgentID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     int64     `gorm:"not null"`
	CreatedAt  time.Time
}
