package repositories

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
)

// AgentRepository interface
type AgentRepository interface {
	Create(ctx context.Context, agent *entities.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error)
	// ListAvailable returns active agents holding at least minBalance coins,
	// ordered by trust score descending.
	ListAvailable(ctx context.Context, filter entities.AgentFilter, minBalance int64) ([]*entities.Agent, error)
	// DebitCoins subtracts quantity from the agent's coin balance. The guard
	// coin_balance >= quantity is part of the write; a failed guard returns
	// ErrInsufficientAgentLiquidity.
	DebitCoins(ctx context.Context, id uuid.UUID, quantity int64) error
	CreditCoins(ctx context.Context, id uuid.UUID, quantity int64) error
	// RecordCompletedDeposit bumps totalDeposits and accumulates earned commission.
	RecordCompletedDeposit(ctx context.Context, id uuid.UUID, commission int64) error
	IncrementVerifications(ctx context.Context, id uuid.UUID) error
}
