package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"charityhub.backend/internal/domain/entities"
	"charityhub.backend/internal/usecases"
)

func TestCommissionLedger_CreditOnce(t *testing.T) {
	commRepo := new(MockCommissionRepository)
	agentRepo := new(MockAgentRepository)
	uc := usecases.NewCommissionLedgerUsecase(commRepo, agentRepo)

	purchaseID := uuid.New()
	agentID := uuid.New()

	commRepo.On("CreditOnce", mock.Anything, mock.MatchedBy(func(e *entities.CommissionEntry) bool {
		return e.PurchaseID == purchaseID && e.Amount == 100
	})).Return(true, nil).Once()
	agentRepo.On("RecordCompletedDeposit", mock.Anything, agentID, int64(100)).Return(nil).Once()

	credited, err := uc.CreditOnce(context.Background(), purchaseID, agentID, 100)
	assert.NoError(t, err)
	assert.True(t, credited)
	agentRepo.AssertExpectations(t)
}

func TestCommissionLedger_DuplicateIsNoOp(t *testing.T) {
	commRepo := new(MockCommissionRepository)
	agentRepo := new(MockAgentRepository)
	uc := usecases.NewCommissionLedgerUsecase(commRepo, agentRepo)

	commRepo.On("CreditOnce", mock.Anything, mock.Anything).Return(false, nil).Once()

	credited, err := uc.CreditOnce(context.Background(), uuid.New(), uuid.New(), 100)
	assert.NoError(t, err)
	assert.False(t, credited)

	// the stat rollup must not run twice either
	agentRepo.AssertNotCalled(t, "RecordCompletedDeposit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommissionLedger_ListAgentEntries(t *testing.T) {
	commRepo := new(MockCommissionRepository)
	agentRepo := new(MockAgentRepository)
	uc := usecases.NewCommissionLedgerUsecase(commRepo, agentRepo)

	agentID := uuid.New()
	commRepo.On("GetByAgentID", mock.Anything, agentID, 20, 0).
		Return([]*entities.CommissionEntry{{ID: uuid.New(), Amount: 100}}, 1, nil).Once()

	entries, total, err := uc.ListAgentEntries(context.Background(), agentID, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)
}
