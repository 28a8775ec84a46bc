package repositories

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
)

// VerificationRepository interface
type VerificationRepository interface {
	Create(ctx context.Context, request *entities.VerificationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationRequest, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error)
	GetPendingByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error)
	// HasPending reports whether the user already has an undecided case.
	HasPending(ctx context.Context, userID uuid.UUID) (bool, error)
	// TransitionStatus applies the guarded pending -> terminal write; zero rows
	// affected returns ErrInvalidStateTransition.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.VerificationStatus, updates map[string]interface{}) error
}
