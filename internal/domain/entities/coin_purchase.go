package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CoinPurchaseStatus represents the status of a coin purchase
type CoinPurchaseStatus string

const (
	CoinPurchaseStatusPending   CoinPurchaseStatus = "pending"
	CoinPurchaseStatusEscrowed  CoinPurchaseStatus = "escrowed"
	CoinPurchaseStatusPaid      CoinPurchaseStatus = "paid"
	CoinPurchaseStatusCompleted CoinPurchaseStatus = "completed"
	CoinPurchaseStatusRejected  CoinPurchaseStatus = "rejected"
	CoinPurchaseStatusCancelled CoinPurchaseStatus = "cancelled"
	CoinPurchaseStatusExpired   CoinPurchaseStatus = "expired"
)

// IsTerminal reports whether no further transition is permitted
func (s CoinPurchaseStatus) IsTerminal() bool {
	switch s {
	case CoinPurchaseStatusCompleted, CoinPurchaseStatusRejected,
		CoinPurchaseStatusCancelled, CoinPurchaseStatusExpired:
		return true
	}
	return false
}

// PaymentMethod represents the off-platform rail the requester paid with
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCash         PaymentMethod = "cash"
)

// IsValid reports whether the payment method is a known rail
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCash:
		return true
	}
	return false
}

// CoinPurchase represents one requester-to-agent coin exchange held in escrow
type CoinPurchase struct {
	ID            uuid.UUID          `json:"id"`
	RequesterID   uuid.UUID          `json:"requesterId"`
	AgentID       uuid.UUID          `json:"agentId"`
	Quantity      int64              `json:"quantity"`
	PricePerCoin  int64              `json:"pricePerCoin"`
	TotalPrice    int64              `json:"totalPrice"`
	Status        CoinPurchaseStatus `json:"status"`
	PaymentMethod PaymentMethod      `json:"paymentMethod,omitempty"`
	PaymentProof  null.String        `json:"paymentProof,omitempty"`
	Notes         null.String        `json:"notes,omitempty"`
	ExpiresAt     time.Time          `json:"expiresAt"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	DeletedAt     *time.Time         `json:"-"`
}

// CreateCoinPurchaseInput represents input for opening an escrowed purchase
type CreateCoinPurchaseInput struct {
	AgentID  string `json:"agentId" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// ConfirmPaymentInput represents the requester's payment attestation
type ConfirmPaymentInput struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentProof  string `json:"paymentProof"`
}

// ConfirmReceiptInput represents the agent's receipt decision
type ConfirmReceiptInput struct {
	Received *bool  `json:"received" binding:"required"`
	Notes    string `json:"notes"`
}
