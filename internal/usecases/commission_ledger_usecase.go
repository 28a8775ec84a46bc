package usecases

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainRepos "charityhub.backend/internal/domain/repositories"
	"charityhub.backend/pkg/metrics"
	"charityhub.backend/pkg/utils"
)

// CommissionLedgerUsecase credits agent commission exactly once per completed
// purchase. The ledger's unique key on purchase id is the mechanism; this
// usecase just layers the agent stat rollup on top of a successful insert.
type CommissionLedgerUsecase struct {
	commissionRepo domainRepos.CommissionRepository
	agentRepo      domainRepos.AgentRepository
}

func NewCommissionLedgerUsecase(
	commissionRepo domainRepos.CommissionRepository,
	agentRepo domainRepos.AgentRepository,
) *CommissionLedgerUsecase {
	return &CommissionLedgerUsecase{
		commissionRepo: commissionRepo,
		agentRepo:      agentRepo,
	}
}

// CreditOnce credits amount to the agent for the given purchase. A second call
// with the same purchase id is a no-op returning credited=false, never an
// error, so redelivered confirmations are harmless.
func (uc *CommissionLedgerUsecase) CreditOnce(ctx context.Context, purchaseID, agentID uuid.UUID, amount int64) (bool, error) {
	credited, err := uc.commissionRepo.CreditOnce(ctx, &entities.CommissionEntry{
		ID:         utils.GenerateUUIDv7(),
		PurchaseID: purchaseID,
		AgentID:    agentID,
		Amount:     amount,
	})
	if err != nil {
		return false, err
	}
	if !credited {
		return false, nil
	}

	if err := uc.agentRepo.RecordCompletedDeposit(ctx, agentID, amount); err != nil {
		return false, err
	}

	metrics.CommissionCredits.Inc()
	return true, nil
}

// ListAgentEntries returns the agent's commission history
func (uc *CommissionLedgerUsecase) ListAgentEntries(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.CommissionEntry, int, error) {
	return uc.commissionRepo.GetByAgentID(ctx, agentID, limit, offset)
}
