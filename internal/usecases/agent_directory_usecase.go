package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	domainRepos "charityhub.backend/internal/domain/repositories"
)

// AgentDirectoryUsecase is the read side of the agent pool: active agents with
// enough liquidity to serve at least the minimum purchase unit.
type AgentDirectoryUsecase struct {
	agentRepo domainRepos.AgentRepository
}

func NewAgentDirectoryUsecase(agentRepo domainRepos.AgentRepository) *AgentDirectoryUsecase {
	return &AgentDirectoryUsecase{agentRepo: agentRepo}
}

// ListAvailable returns eligible agents ordered by trust score. An empty
// result is not an error; the caller simply has no agent to pick from.
func (uc *AgentDirectoryUsecase) ListAvailable(ctx context.Context, filter entities.AgentFilter) ([]*entities.Agent, error) {
	return uc.agentRepo.ListAvailable(ctx, filter, MinPurchaseQuantity)
}

// GetByUserID resolves the agent profile behind an authenticated user.
func (uc *AgentDirectoryUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error) {
	agent, err := uc.agentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("agent profile not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return agent, nil
}

// pickVerificationAgent routes a verification case to the most trusted active
// agent. Liquidity is irrelevant for verification work.
func (uc *AgentDirectoryUsecase) pickVerificationAgent(ctx context.Context) (*entities.Agent, error) {
	agents, err := uc.agentRepo.ListAvailable(ctx, entities.AgentFilter{}, 0)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, nil
	}
	return agents[0], nil
}
