package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoinPurchaseStatus_IsTerminal(t *testing.T) {
	assert.False(t, CoinPurchaseStatusPending.IsTerminal())
	assert.False(t, CoinPurchaseStatusEscrowed.IsTerminal())
	assert.False(t, CoinPurchaseStatusPaid.IsTerminal())

	assert.True(t, CoinPurchaseStatusCompleted.IsTerminal())
	assert.True(t, CoinPurchaseStatusRejected.IsTerminal())
	assert.True(t, CoinPurchaseStatusCancelled.IsTerminal())
	assert.True(t, CoinPurchaseStatusExpired.IsTerminal())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodMobileMoney.IsValid())
	assert.True(t, PaymentMethodCash.IsValid())
	assert.False(t, PaymentMethod("carrier_pigeon").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
