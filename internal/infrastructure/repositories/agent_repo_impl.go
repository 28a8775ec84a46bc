package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/infrastructure/models"
)

// AgentRepositoryImpl implements AgentRepository
type AgentRepositoryImpl struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepositoryImpl {
	return &AgentRepositoryImpl{db: db}
}

func (r *AgentRepositoryImpl) Create(ctx context.Context, agent *entities.Agent) error {
	m := &models.Agent{
		ID:          agent.ID,
		UserID:      agent.UserID,
		AgentCode:   agent.AgentCode,
		CoinBalance: agent.CoinBalance,
		TrustScore:  agent.TrustScore,
		State:       agent.State,
		City:        agent.City,
		IsActive:    agent.IsActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *AgentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	var m models.Agent
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AgentRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error) {
	var m models.Agent
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AgentRepositoryImpl) ListAvailable(ctx context.Context, filter entities.AgentFilter, minBalance int64) ([]*entities.Agent, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("is_active = ? AND coin_balance >= ?", true, minBalance)

	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.MinTrustScore > 0 {
		q = q.Where("trust_score >= ?", filter.MinTrustScore)
	}

	var ms []models.Agent
	if err := q.Order("trust_score DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	agents := make([]*entities.Agent, 0, len(ms))
	for _, m := range ms {
		model := m
		agents = append(agents, r.toEntity(&model))
	}
	return agents, nil
}

// DebitCoins holds the balance guard inside the UPDATE itself so the check and
// the debit are one statement. A concurrent debit that would overdraw the agent
// matches zero rows and surfaces as ErrInsufficientAgentLiquidity.
func (r *AgentRepositoryImpl) DebitCoins(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Agent{}).
		Where("id = ? AND coin_balance >= ?", id, quantity).
		Updates(map[string]interface{}{
			"coin_balance": gorm.Expr("coin_balance - ?", quantity),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInsufficientAgentLiquidity
	}
	return nil
}

func (r *AgentRepositoryImpl) CreditCoins(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coin_balance": gorm.Expr("coin_balance + ?", quantity),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AgentRepositoryImpl) RecordCompletedDeposit(ctx context.Context, id uuid.UUID, commission int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_deposits":    gorm.Expr("total_deposits + 1"),
			"commission_earned": gorm.Expr("commission_earned + ?", commission),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AgentRepositoryImpl) IncrementVerifications(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_verifications": gorm.Expr("total_verifications + 1"),
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AgentRepositoryImpl) toEntity(m *models.Agent) *entities.Agent {
	return &entities.Agent{
		ID:                 m.ID,
		UserID:             m.UserID,
		AgentCode:          m.AgentCode,
		CoinBalance:        m.CoinBalance,
		TrustScore:         m.TrustScore,
		State:              m.State,
		City:               m.City,
		IsActive:           m.IsActive,
		TotalVerifications: m.TotalVerifications,
		TotalDeposits:      m.TotalDeposits,
		CommissionEarned:   m.CommissionEarned,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
