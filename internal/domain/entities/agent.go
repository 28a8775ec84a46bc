package entities

import (
	"time"

	"github.com/google/uuid"
)

// Agent represents a human liquidity and verification provider
type Agent struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	AgentCode          string     `json:"agentCode"`
	CoinBalance        int64      `json:"coinBalance"`
	TrustScore         int        `json:"trustScore"`
	State              string     `json:"state"`
	City               string     `json:"city"`
	IsActive           bool       `json:"isActive"`
	TotalVerifications int        `json:"totalVerifications"`
	TotalDeposits      int        `json:"totalDeposits"`
	CommissionEarned   int64      `json:"commissionEarned"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	DeletedAt          *time.Time `json:"-"`
}

// AgentFilter narrows the available-agent listing
type AgentFilter struct {
	City          string `form:"city"`
	MinTrustScore int    `form:"minTrustScore"`
}
