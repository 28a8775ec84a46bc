package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Agent struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AgentCode          string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	CoinBalance        int64     `gorm:"not null;default:0;check:coin_balance >= 0"`
	TrustScore         int       `gorm:"not null;default:0;index"`
	State              string    `gorm:"type:varchar(100)"`
	City               string    `gorm:"type:varchar(100);index"`
	IsActive           bool      `gorm:"not null;default:true;index"`
	TotalVerifications int       `gorm:"not null;default:0"`
	TotalDeposits      int       `gorm:"not null;default:0"`
	CommissionEarned   int64     `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
