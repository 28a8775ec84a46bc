package repositories

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
)

// CommissionRepository interface
type CommissionRepository interface {
	// CreditOnce inserts the ledger row unless one already exists for the
	// purchase. Returns false with no error on the duplicate path, so retried
	// confirmations are safe.
	CreditOnce(ctx context.Context, entry *entities.CommissionEntry) (bool, error)
	GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) (*entities.CommissionEntry, error)
	GetByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.CommissionEntry, int, error)
}
