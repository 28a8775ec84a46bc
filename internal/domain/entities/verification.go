package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationType represents the identity tier being applied for
type VerificationType string

const (
	VerificationTypeTier2 VerificationType = "tier2"
	VerificationTypeTier3 VerificationType = "tier3"
)

// IsValid reports whether the verification type is known
func (t VerificationType) IsValid() bool {
	return t == VerificationTypeTier2 || t == VerificationTypeTier3
}

// TargetTier returns the user tier granted on approval
func (t VerificationType) TargetTier() int {
	if t == VerificationTypeTier3 {
		return 3
	}
	return 2
}

// VerificationStatus represents the status of a verification case
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// IsTerminal reports whether the case has been decided
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

// VerificationDocuments holds opaque references to the submitted documents
type VerificationDocuments struct {
	Selfie      string `json:"selfie,omitempty"`
	IDCard      string `json:"idCard,omitempty"`
	UtilityBill string `json:"utilityBill,omitempty"`
}

// CompleteFor reports whether the document set satisfies the tier requirement.
// Tier2 needs selfie and ID card, tier3 additionally needs a utility bill.
func (d VerificationDocuments) CompleteFor(t VerificationType) bool {
	if d.Selfie == "" || d.IDCard == "" {
		return false
	}
	if t == VerificationTypeTier3 && d.UtilityBill == "" {
		return false
	}
	return true
}

// VerificationRequest represents one tier-upgrade case
type VerificationRequest struct {
	ID         uuid.UUID             `json:"id"`
	UserID     uuid.UUID             `json:"userId"`
	AgentID    uuid.UUID             `json:"agentId"`
	Type       VerificationType      `json:"type"`
	Status     VerificationStatus    `json:"status"`
	Documents  VerificationDocuments `json:"documents"`
	Notes      null.String           `json:"notes,omitempty"`
	DecidedAt  *time.Time            `json:"decidedAt,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	DeletedAt  *time.Time            `json:"-"`
}

// SubmitVerificationInput represents a user's tier-upgrade submission
type SubmitVerificationInput struct {
	Type      string                `json:"type" binding:"required"`
	Documents VerificationDocuments `json:"documents" binding:"required"`
}

// DecideVerificationInput represents the assigned agent's decision
type DecideVerificationInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}
