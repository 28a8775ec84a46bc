package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoinPurchase struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	RequesterID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int64     `gorm:"not null;check:quantity > 0"`
	PricePerCoin  int64     `gorm:"not null"`
	TotalPrice    int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(50);not null;index"`
	PaymentMethod string    `gorm:"type:varchar(50)"`
	PaymentProof  string    `gorm:"type:text"`
	Notes         string    `gorm:"type:text"`
	ExpiresAt     time.Time `gorm:"not null;index"`
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
