package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/infrastructure/models"
)

// VerificationRepositoryImpl implements VerificationRepository
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepositoryImpl {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(ctx context.Context, req *entities.VerificationRequest) error {
	docs, err := json.Marshal(req.Documents)
	if err != nil {
		return err
	}

	m := &models.VerificationRequest{
		ID:        req.ID,
		UserID:    req.UserID,
		AgentID:   req.AgentID,
		Type:      string(req.Type),
		Status:    string(req.Status),
		Documents: string(docs),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *VerificationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationRequest, error) {
	var m models.VerificationRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *VerificationRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	var total int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRequest{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.VerificationRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*entities.VerificationRequest, 0, len(ms))
	for _, m := range ms {
		model := m
		requests = append(requests, r.toEntity(&model))
	}
	return requests, int(total), nil
}

func (r *VerificationRepositoryImpl) GetPendingByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRequest{}).
		Where("agent_id = ? AND status = ?", agentID, entities.VerificationStatusPending)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.VerificationRequest
	if err := q.Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*entities.VerificationRequest, 0, len(ms))
	for _, m := range ms {
		model := m
		requests = append(requests, r.toEntity(&model))
	}
	return requests, int(total), nil
}

func (r *VerificationRepositoryImpl) HasPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRequest{}).
		Where("user_id = ? AND status = ?", userID, entities.VerificationStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TransitionStatus applies the decision with the same guarded-update discipline
// as the purchase state machine: a case already decided matches zero rows.
func (r *VerificationRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.VerificationStatus, updates map[string]interface{}) error {
	values := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		values[k] = v
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRequest{}).
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

func (r *VerificationRepositoryImpl) toEntity(m *models.VerificationRequest) *entities.VerificationRequest {
	var docs entities.VerificationDocuments
	_ = json.Unmarshal([]byte(m.Documents), &docs)

	return &entities.VerificationRequest{
		ID:        m.ID,
		UserID:    m.UserID,
		AgentID:   m.AgentID,
		Type:      entities.VerificationType(m.Type),
		Status:    entities.VerificationStatus(m.Status),
		Documents: docs,
		Notes:     null.NewString(m.Notes, m.Notes != ""),
		DecidedAt: m.DecidedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
