package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	domainRepos "charityhub.backend/internal/domain/repositories"
	"charityhub.backend/pkg/metrics"
	"charityhub.backend/pkg/utils"
)

// VerificationUsecase owns the tier-upgrade state machine:
// pending -> {approved | rejected}, each exactly once.
type VerificationUsecase struct {
	verificationRepo domainRepos.VerificationRepository
	agentRepo        domainRepos.AgentRepository
	userRepo         domainRepos.UserRepository
	directory        *AgentDirectoryUsecase
	uow              domainRepos.UnitOfWork
}

func NewVerificationUsecase(
	verificationRepo domainRepos.VerificationRepository,
	agentRepo domainRepos.AgentRepository,
	userRepo domainRepos.UserRepository,
	directory *AgentDirectoryUsecase,
	uow domainRepos.UnitOfWork,
) *VerificationUsecase {
	return &VerificationUsecase{
		verificationRepo: verificationRepo,
		agentRepo:        agentRepo,
		userRepo:         userRepo,
		directory:        directory,
		uow:              uow,
	}
}

// Submit opens a tier-upgrade case and routes it to an agent. Tier3 requires
// the full document set; an incomplete submission never creates a record.
func (uc *VerificationUsecase) Submit(ctx context.Context, userID uuid.UUID, input entities.SubmitVerificationInput) (*entities.VerificationRequest, error) {
	vType := entities.VerificationType(input.Type)
	if !vType.IsValid() {
		return nil, domainerrors.BadRequest("unknown verification type")
	}
	if !input.Documents.CompleteFor(vType) {
		return nil, domainerrors.IncompleteDocuments("required documents are missing for " + input.Type)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.Unauthorized("user not found")
	}
	if user.Tier >= vType.TargetTier() {
		return nil, domainerrors.BadRequest("user already holds this tier")
	}
	if vType.TargetTier() != user.Tier+1 {
		return nil, domainerrors.BadRequest("tiers must be upgraded one level at a time")
	}

	pending, err := uc.verificationRepo.HasPending(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if pending {
		return nil, domainerrors.Conflict("a verification request is already pending")
	}

	agent, err := uc.directory.pickVerificationAgent(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if agent == nil {
		return nil, domainerrors.AgentUnavailable("no verification agent available")
	}

	now := time.Now()
	request := &entities.VerificationRequest{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		AgentID:   agent.ID,
		Type:      vType,
		Status:    entities.VerificationStatusPending,
		Documents: input.Documents,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.verificationRepo.Create(ctx, request); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return request, nil
}

// Decide applies the assigned agent's terminal decision. Approval bumps the
// user's tier and the agent's verification count atomically with the status
// write; a case already decided fails with InvalidStateTransition.
func (uc *VerificationUsecase) Decide(ctx context.Context, agentUserID, requestID uuid.UUID, input entities.DecideVerificationInput) (*entities.VerificationRequest, error) {
	status := entities.VerificationStatus(input.Status)
	if status != entities.VerificationStatusApproved && status != entities.VerificationStatusRejected {
		return nil, domainerrors.BadRequest("decision must be approved or rejected")
	}

	agent, err := uc.agentRepo.GetByUserID(ctx, agentUserID)
	if err != nil {
		return nil, domainerrors.Forbidden("caller is not an agent")
	}

	request, err := uc.verificationRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("verification request not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if request.AgentID != agent.ID {
		return nil, domainerrors.NotAssignedAgent("request is assigned to another agent")
	}

	// Idempotent replay of an identical decision.
	if request.Status == status {
		return request, nil
	}

	updates := map[string]interface{}{
		"notes":      input.Notes,
		"decided_at": time.Now(),
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.verificationRepo.TransitionStatus(txCtx, requestID,
			entities.VerificationStatusPending, status, updates); err != nil {
			return err
		}
		if status != entities.VerificationStatusApproved {
			return nil
		}
		if err := uc.userRepo.UpdateTier(txCtx, request.UserID, request.Type.TargetTier()); err != nil {
			return err
		}
		return uc.agentRepo.IncrementVerifications(txCtx, agent.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidStateTransition) {
			return nil, domainerrors.InvalidStateTransition("verification request already decided")
		}
		return nil, domainerrors.InternalError(err)
	}

	metrics.VerificationsDecided.WithLabelValues(string(status)).Inc()
	return uc.verificationRepo.GetByID(ctx, requestID)
}

// ListUserRequests lists the caller's verification cases, newest first
func (uc *VerificationUsecase) ListUserRequests(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	return uc.verificationRepo.GetByUserID(ctx, userID, limit, offset)
}

// ListAgentQueue lists the agent's undecided cases, oldest first
func (uc *VerificationUsecase) ListAgentQueue(ctx context.Context, agentUserID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	agent, err := uc.agentRepo.GetByUserID(ctx, agentUserID)
	if err != nil {
		return nil, 0, domainerrors.Forbidden("caller is not an agent")
	}
	return uc.verificationRepo.GetPendingByAgentID(ctx, agent.ID, limit, offset)
}
