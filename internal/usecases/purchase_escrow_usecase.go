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

// PurchaseEscrowUsecase owns the coin purchase state machine:
// escrowed -> paid -> {completed | rejected}, plus escrowed -> expired.
// Every transition pairs a guarded status write with its balance mutation
// inside one unit of work, so partial application is never observable.
type PurchaseEscrowUsecase struct {
	purchaseRepo domainRepos.CoinPurchaseRepository
	agentRepo    domainRepos.AgentRepository
	userRepo     domainRepos.UserRepository
	ledger       *CommissionLedgerUsecase
	uow          domainRepos.UnitOfWork
}

func NewPurchaseEscrowUsecase(
	purchaseRepo domainRepos.CoinPurchaseRepository,
	agentRepo domainRepos.AgentRepository,
	userRepo domainRepos.UserRepository,
	ledger *CommissionLedgerUsecase,
	uow domainRepos.UnitOfWork,
) *PurchaseEscrowUsecase {
	return &PurchaseEscrowUsecase{
		purchaseRepo: purchaseRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		uow:          uow,
	}
}

// CreatePurchase debits the agent and creates the record in escrowed as one
// atomic unit. There is no observable window where coins are neither held by
// the agent nor reserved for the purchase.
func (uc *PurchaseEscrowUsecase) CreatePurchase(ctx context.Context, requesterID uuid.UUID, input entities.CreateCoinPurchaseInput) (*entities.CoinPurchase, error) {
	agentID, err := uuid.Parse(input.AgentID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid agent ID")
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.BadRequest("quantity must be positive")
	}

	agent, err := uc.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("agent not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if !agent.IsActive {
		return nil, domainerrors.AgentUnavailable("agent is not active")
	}
	if agent.UserID == requesterID {
		return nil, domainerrors.BadRequest("agents cannot purchase from themselves")
	}
	if agent.CoinBalance < input.Quantity {
		return nil, domainerrors.InsufficientLiquidity("agent does not hold enough coins")
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, domainerrors.Unauthorized("requester not found")
	}
	if limit := PurchaseLimitForTier(requester.Tier); limit > 0 && input.Quantity > limit {
		return nil, domainerrors.TierLimitExceeded("purchase exceeds your tier limit, upgrade your verification tier")
	}

	now := time.Now()
	purchase := &entities.CoinPurchase{
		ID:           utils.GenerateUUIDv7(),
		RequesterID:  requesterID,
		AgentID:      agent.ID,
		Quantity:     input.Quantity,
		PricePerCoin: PricePerCoin,
		TotalPrice:   input.Quantity * PricePerCoin,
		Status:       entities.CoinPurchaseStatusEscrowed,
		ExpiresAt:    now.Add(PurchaseExpiryMinutes * time.Minute),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		// The debit re-checks the balance inside the UPDATE, so a concurrent
		// purchase against the same agent cannot overdraw.
		if err := uc.agentRepo.DebitCoins(txCtx, agent.ID, input.Quantity); err != nil {
			return err
		}
		return uc.purchaseRepo.Create(txCtx, purchase)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInsufficientAgentLiquidity) {
			return nil, domainerrors.InsufficientLiquidity("agent does not hold enough coins")
		}
		return nil, domainerrors.InternalError(err)
	}

	metrics.PurchasesEscrowed.Inc()
	return purchase, nil
}

// ConfirmPaymentSent records the requester's attestation that real-world
// payment has been made, moving the purchase to paid. Replaying the call with
// the same payload while paid returns the current record without side effects.
func (uc *PurchaseEscrowUsecase) ConfirmPaymentSent(ctx context.Context, requesterID, purchaseID uuid.UUID, input entities.ConfirmPaymentInput) (*entities.CoinPurchase, error) {
	method := entities.PaymentMethod(input.PaymentMethod)
	if !method.IsValid() {
		return nil, domainerrors.BadRequest("unknown payment method")
	}

	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("purchase not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if purchase.RequesterID != requesterID {
		return nil, domainerrors.Forbidden("purchase belongs to another requester")
	}

	// Idempotent replay: same attestation against an already paid record.
	if purchase.Status == entities.CoinPurchaseStatusPaid &&
		purchase.PaymentMethod == method &&
		purchase.PaymentProof.String == input.PaymentProof {
		return purchase, nil
	}

	err = uc.purchaseRepo.TransitionStatus(ctx, purchaseID,
		entities.CoinPurchaseStatusEscrowed, entities.CoinPurchaseStatusPaid,
		map[string]interface{}{
			"payment_method": string(method),
			"payment_proof":  input.PaymentProof,
		})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidStateTransition) {
			return nil, uc.transitionError(ctx, purchaseID, "payment can only be confirmed while escrowed")
		}
		return nil, domainerrors.InternalError(err)
	}

	metrics.PurchasesPaid.Inc()
	return uc.purchaseRepo.GetByID(ctx, purchaseID)
}

// ConfirmReceipt is the assigned agent's decision on a paid purchase. On
// received=true the escrowed coins release to the requester and commission is
// credited exactly once; on received=false they return to the agent.
func (uc *PurchaseEscrowUsecase) ConfirmReceipt(ctx context.Context, agentUserID, purchaseID uuid.UUID, input entities.ConfirmReceiptInput) (*entities.CoinPurchase, error) {
	if input.Received == nil {
		return nil, domainerrors.BadRequest("received flag is required")
	}
	received := *input.Received

	agent, err := uc.agentRepo.GetByUserID(ctx, agentUserID)
	if err != nil {
		return nil, domainerrors.Forbidden("caller is not an agent")
	}

	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("purchase not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if purchase.AgentID != agent.ID {
		return nil, domainerrors.NotAssignedAgent("purchase is assigned to another agent")
	}

	// Idempotent replay: the decision already applied. The commission ledger
	// would reject a duplicate credit anyway; skip the side effects entirely.
	if received && purchase.Status == entities.CoinPurchaseStatusCompleted {
		return purchase, nil
	}
	if !received && purchase.Status == entities.CoinPurchaseStatusRejected {
		return purchase, nil
	}

	if received {
		err = uc.completePurchase(ctx, purchase)
	} else {
		err = uc.rejectPurchase(ctx, purchase, input.Notes)
	}
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidStateTransition) {
			return nil, uc.transitionError(ctx, purchaseID, "receipt can only be confirmed while paid")
		}
		return nil, domainerrors.InternalError(err)
	}

	return uc.purchaseRepo.GetByID(ctx, purchaseID)
}

func (uc *PurchaseEscrowUsecase) completePurchase(ctx context.Context, purchase *entities.CoinPurchase) error {
	commission := purchase.TotalPrice * CommissionRatePercent / 100

	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		now := time.Now()
		if err := uc.purchaseRepo.TransitionStatus(txCtx, purchase.ID,
			entities.CoinPurchaseStatusPaid, entities.CoinPurchaseStatusCompleted,
			map[string]interface{}{"completed_at": now}); err != nil {
			return err
		}
		if err := uc.userRepo.CreditCoins(txCtx, purchase.RequesterID, purchase.Quantity); err != nil {
			return err
		}
		_, err := uc.ledger.CreditOnce(txCtx, purchase.ID, purchase.AgentID, commission)
		return err
	})
	if err != nil {
		return err
	}

	metrics.PurchasesCompleted.Inc()
	return nil
}

func (uc *PurchaseEscrowUsecase) rejectPurchase(ctx context.Context, purchase *entities.CoinPurchase, notes string) error {
	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.purchaseRepo.TransitionStatus(txCtx, purchase.ID,
			entities.CoinPurchaseStatusPaid, entities.CoinPurchaseStatusRejected,
			map[string]interface{}{"notes": notes}); err != nil {
			return err
		}
		return uc.agentRepo.CreditCoins(txCtx, purchase.AgentID, purchase.Quantity)
	})
	if err != nil {
		return err
	}

	metrics.PurchasesRejected.Inc()
	return nil
}

// Expire force-transitions a stale escrowed purchase and returns the held
// coins to the agent. Paid purchases are never expired: once payment is
// attested a stuck record is a dispute, not a timeout.
func (uc *PurchaseEscrowUsecase) Expire(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("purchase not found")
		}
		return domainerrors.InternalError(err)
	}
	if !time.Now().After(purchase.ExpiresAt) {
		return domainerrors.InvalidStateTransition("purchase has not yet expired")
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.purchaseRepo.TransitionStatus(txCtx, purchaseID,
			entities.CoinPurchaseStatusEscrowed, entities.CoinPurchaseStatusExpired,
			nil); err != nil {
			return err
		}
		return uc.agentRepo.CreditCoins(txCtx, purchase.AgentID, purchase.Quantity)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidStateTransition) {
			// A user transition won the race; nothing to undo.
			return domainerrors.InvalidStateTransition("purchase is no longer escrowed")
		}
		return domainerrors.InternalError(err)
	}

	metrics.PurchasesExpired.Inc()
	return nil
}

// GetPurchase returns a purchase visible to its requester or assigned agent
func (uc *PurchaseEscrowUsecase) GetPurchase(ctx context.Context, callerID, purchaseID uuid.UUID) (*entities.CoinPurchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("purchase not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	if purchase.RequesterID == callerID {
		return purchase, nil
	}
	if agent, err := uc.agentRepo.GetByUserID(ctx, callerID); err == nil && agent.ID == purchase.AgentID {
		return purchase, nil
	}
	return nil, domainerrors.Forbidden("purchase belongs to another user")
}

// ListRequesterPurchases lists the caller's purchases, newest first
func (uc *PurchaseEscrowUsecase) ListRequesterPurchases(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	return uc.purchaseRepo.GetByRequesterID(ctx, requesterID, limit, offset)
}

// ListAgentQueue lists the agent's open purchases (escrowed and paid),
// oldest first so the longest-waiting requester is handled first
func (uc *PurchaseEscrowUsecase) ListAgentQueue(ctx context.Context, agentUserID uuid.UUID, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	agent, err := uc.agentRepo.GetByUserID(ctx, agentUserID)
	if err != nil {
		return nil, 0, domainerrors.Forbidden("caller is not an agent")
	}
	return uc.purchaseRepo.GetByAgentID(ctx, agent.ID,
		[]entities.CoinPurchaseStatus{
			entities.CoinPurchaseStatusEscrowed,
			entities.CoinPurchaseStatusPaid,
		}, limit, offset)
}

// transitionError refreshes the record to report why a guarded transition
// found no matching row.
func (uc *PurchaseEscrowUsecase) transitionError(ctx context.Context, purchaseID uuid.UUID, message string) error {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err == nil && purchase.Status == entities.CoinPurchaseStatusExpired {
		return domainerrors.ExpiredRecord("purchase has expired")
	}
	return domainerrors.InvalidStateTransition(message)
}
