package repositories

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
)

// CoinPurchaseRepository interface
type CoinPurchaseRepository interface {
	Create(ctx context.Context, purchase *entities.CoinPurchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.CoinPurchase, error)
	GetByRequesterID(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entities.CoinPurchase, int, error)
	GetByAgentID(ctx context.Context, agentID uuid.UUID, statuses []entities.CoinPurchaseStatus, limit, offset int) ([]*entities.CoinPurchase, int, error)
	// TransitionStatus performs the guarded status write: the row is updated only
	// if its current status equals from. Zero rows affected returns
	// ErrInvalidStateTransition, which serializes competing transitions.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.CoinPurchaseStatus, updates map[string]interface{}) error
	// GetExpiredEscrowed returns escrowed purchases whose SLA window has lapsed.
	GetExpiredEscrowed(ctx context.Context, limit int) ([]*entities.CoinPurchase, error)
}
