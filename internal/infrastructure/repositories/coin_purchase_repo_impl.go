package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/infrastructure/models"
)

// CoinPurchaseRepositoryImpl implements CoinPurchaseRepository
type CoinPurchaseRepositoryImpl struct {
	db *gorm.DB
}

func NewCoinPurchaseRepository(db *gorm.DB) *CoinPurchaseRepositoryImpl {
	return &CoinPurchaseRepositoryImpl{db: db}
}

func (r *CoinPurchaseRepositoryImpl) Create(ctx context.Context, p *entities.CoinPurchase) error {
	m := &models.CoinPurchase{
		ID:           p.ID,
		RequesterID:  p.RequesterID,
		AgentID:      p.AgentID,
		Quantity:     p.Quantity,
		PricePerCoin: p.PricePerCoin,
		TotalPrice:   p.TotalPrice,
		Status:       string(p.Status),
		ExpiresAt:    p.ExpiresAt,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *CoinPurchaseRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.CoinPurchase, error) {
	var m models.CoinPurchase
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CoinPurchaseRepositoryImpl) GetByRequesterID(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	var total int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.CoinPurchase{}).
		Where("requester_id = ?", requesterID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.CoinPurchase
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	purchases := make([]*entities.CoinPurchase, 0, len(ms))
	for _, m := range ms {
		model := m
		purchases = append(purchases, r.toEntity(&model))
	}
	return purchases, int(total), nil
}

func (r *CoinPurchaseRepositoryImpl) GetByAgentID(ctx context.Context, agentID uuid.UUID, statuses []entities.CoinPurchaseStatus, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).Model(&models.CoinPurchase{}).
		Where("agent_id = ?", agentID)
	if len(statuses) > 0 {
		ss := make([]string, 0, len(statuses))
		for _, s := range statuses {
			ss = append(ss, string(s))
		}
		q = q.Where("status IN ?", ss)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.CoinPurchase
	if err := q.Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	purchases := make([]*entities.CoinPurchase, 0, len(ms))
	for _, m := range ms {
		model := m
		purchases = append(purchases, r.toEntity(&model))
	}
	return purchases, int(total), nil
}

// TransitionStatus is the single write path for the purchase state machine.
// The WHERE clause compares the current status against the expected pre-state,
// so of two racing transitions exactly one matches the row; the loser gets
// ErrInvalidStateTransition and must not apply side effects.
func (r *CoinPurchaseRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.CoinPurchaseStatus, updates map[string]interface{}) error {
	values := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		values[k] = v
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.CoinPurchase{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidStateTransition
	}
	return nil
}

func (r *CoinPurchaseRepositoryImpl) GetExpiredEscrowed(ctx context.Context, limit int) ([]*entities.CoinPurchase, error) {
	var ms []models.CoinPurchase
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND expires_at < ?", entities.CoinPurchaseStatusEscrowed, time.Now()).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	purchases := make([]*entities.CoinPurchase, 0, len(ms))
	for _, m := range ms {
		model := m
		purchases = append(purchases, r.toEntity(&model))
	}
	return purchases, nil
}

func (r *CoinPurchaseRepositoryImpl) toEntity(m *models.CoinPurchase) *entities.CoinPurchase {
	return &entities.CoinPurchase{
		ID:            m.ID,
		RequesterID:   m.RequesterID,
		AgentID:       m.AgentID,
		Quantity:      m.Quantity,
		PricePerCoin:  m.PricePerCoin,
		TotalPrice:    m.TotalPrice,
		Status:        entities.CoinPurchaseStatus(m.Status),
		PaymentMethod: entities.PaymentMethod(m.PaymentMethod),
		PaymentProof:  null.NewString(m.PaymentProof, m.PaymentProof != ""),
		Notes:         null.NewString(m.Notes, m.Notes != ""),
		ExpiresAt:     m.ExpiresAt,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
