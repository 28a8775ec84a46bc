package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"charityhub.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *entities.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Agent), args.Error(1)
}

func (m *MockAgentRepository) ListAvailable(ctx context.Context, filter entities.AgentFilter, minBalance int64) ([]*entities.Agent, error) {
	args := m.Called(ctx, filter, minBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Agent), args.Error(1)
}

func (m *MockAgentRepository) DebitCoins(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockAgentRepository) CreditCoins(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockAgentRepository) RecordCompletedDeposit(ctx context.Context, id uuid.UUID, commission int64) error {
	args := m.Called(ctx, id, commission)
	return args.Error(0)
}

func (m *MockAgentRepository) IncrementVerifications(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock CoinPurchaseRepository
type MockCoinPurchaseRepository struct {
	mock.Mock
}

func (m *MockCoinPurchaseRepository) Create(ctx context.Context, purchase *entities.CoinPurchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockCoinPurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CoinPurchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CoinPurchase), args.Error(1)
}

func (m *MockCoinPurchaseRepository) GetByRequesterID(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	args := m.Called(ctx, requesterID, limit, offset)
	return args.Get(0).([]*entities.CoinPurchase), args.Int(1), args.Error(2)
}

func (m *MockCoinPurchaseRepository) GetByAgentID(ctx context.Context, agentID uuid.UUID, statuses []entities.CoinPurchaseStatus, limit, offset int) ([]*entities.CoinPurchase, int, error) {
	args := m.Called(ctx, agentID, statuses, limit, offset)
	return args.Get(0).([]*entities.CoinPurchase), args.Int(1), args.Error(2)
}

func (m *MockCoinPurchaseRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.CoinPurchaseStatus, updates map[string]interface{}) error {
	args := m.Called(ctx, id, from, to, updates)
	return args.Error(0)
}

func (m *MockCoinPurchaseRepository) GetExpiredEscrowed(ctx context.Context, limit int) ([]*entities.CoinPurchase, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CoinPurchase), args.Error(1)
}

// Mock VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, request *entities.VerificationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockVerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*entities.VerificationRequest), args.Int(1), args.Error(2)
}

func (m *MockVerificationRepository) GetPendingByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.VerificationRequest, int, error) {
	args := m.Called(ctx, agentID, limit, offset)
	return args.Get(0).([]*entities.VerificationRequest), args.Int(1), args.Error(2)
}

func (m *MockVerificationRepository) HasPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.VerificationStatus, updates map[string]interface{}) error {
	args := m.Called(ctx, id, from, to, updates)
	return args.Error(0)
}

// Mock CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) CreditOnce(ctx context.Context, entry *entities.CommissionEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommissionRepository) GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) (*entities.CommissionEntry, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CommissionEntry), args.Error(1)
}

func (m *MockCommissionRepository) GetByAgentID(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.CommissionEntry, int, error) {
	args := m.Called(ctx, agentID, limit, offset)
	return args.Get(0).([]*entities.CommissionEntry), args.Int(1), args.Error(2)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateTier(ctx context.Context, id uuid.UUID, tier int) error {
	args := m.Called(ctx, id, tier)
	return args.Error(0)
}

func (m *MockUserRepository) CreditCoins(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
