package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationType(t *testing.T) {
	assert.True(t, VerificationTypeTier2.IsValid())
	assert.True(t, VerificationTypeTier3.IsValid())
	assert.False(t, VerificationType("tier9").IsValid())

	assert.Equal(t, 2, VerificationTypeTier2.TargetTier())
	assert.Equal(t, 3, VerificationTypeTier3.TargetTier())
}

func TestVerificationStatus_IsTerminal(t *testing.T) {
	assert.False(t, VerificationStatusPending.IsTerminal())
	assert.True(t, VerificationStatusApproved.IsTerminal())
	assert.True(t, VerificationStatusRejected.IsTerminal())
}

func TestVerificationDocuments_CompleteFor(t *testing.T) {
	full := VerificationDocuments{Selfie: "s", IDCard: "i", UtilityBill: "u"}
	assert.True(t, full.CompleteFor(VerificationTypeTier2))
	assert.True(t, full.CompleteFor(VerificationTypeTier3))

	noBill := VerificationDocuments{Selfie: "s", IDCard: "i"}
	assert.True(t, noBill.CompleteFor(VerificationTypeTier2))
	assert.False(t, noBill.CompleteFor(VerificationTypeTier3))

	assert.False(t, VerificationDocuments{Selfie: "s"}.CompleteFor(VerificationTypeTier2))
	assert.False(t, VerificationDocuments{IDCard: "i"}.CompleteFor(VerificationTypeTier2))
	assert.False(t, VerificationDocuments{}.CompleteFor(VerificationTypeTier2))
}
