package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/infrastructure/models"
)

// CommissionRepositoryImpl implements CommissionRepository
type CommissionRepositoryImpl struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepositoryImpl {
	return &CommissionRepositoryImpl{db: db}
}

// CreditOnce relies on the unique index on purchase_id: the insert is attempted
// with ON CONFLICT DO NOTHING, and zero rows affected means a row already
// existed. The duplicate path is a successful no-op, never an error, so a
// redelivered confirmation can call this blindly.
func (r *CommissionRepositoryImpl) CreditOnce(ctx context.Context, entry *entities.CommissionEntry) (bool, error) {
	m := &models.CommissionEntry{
		ID:         entry.ID,
		PurchaseID: entry.PurchaseID,
		AgentID:    entry.AgentID,
		Amount:     entry.Amount,
		CreatedAt:  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "purchase_id"}},
			DoNothing: true,
		}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CommissionRepositoryImpl) GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) (*entities.CommissionEntry, error) {
	var m models.CommissionEntry
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CommissionRepositoryImpl) GetByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.CommissionEntry, int, error) {
	var total int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.CommissionEntry{}).
		Where("agent_id = ?", agentID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.CommissionEntry
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.CommissionEntry, 0, len(ms))
	for _, m := range ms {
		model := m
		entries = append(entries, r.toEntity(&model))
	}
	return entries, int(total), nil
}

func (r *CommissionRepositoryImpl) toEntity(m *models.CommissionEntry) *entities.CommissionEntry {
	return &entities.CommissionEntry{
		ID:         m.ID,
		PurchaseID: m.PurchaseID,
		AgentID:    m.AgentID,
		Amount:     m.Amount,
		CreatedAt:  m.CreatedAt,
	}
}
