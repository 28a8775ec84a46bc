package repositories

import (
	"context"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
)

// UserRepository interface
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateTier(ctx context.Context, id uuid.UUID, tier int) error
	CreditCoins(ctx context.Context, id uuid.UUID, quantity int64) error
}
