package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"charityhub.backend/internal/domain/entities"
	"charityhub.backend/internal/infrastructure/repositories"
	"charityhub.backend/internal/interfaces/http/middleware"
	"charityhub.backend/internal/usecases"
	"charityhub.backend/pkg/jwt"
)

// testEnv wires the full stack against an in-memory sqlite database so handler
// tests exercise routing, auth, usecases and repositories together.
type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	jwtSvc   *jwt.JWTService
	userRepo *repositories.UserRepositoryImpl
	agents   *repositories.AgentRepositoryImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	createTables(t, db)

	userRepo := repositories.NewUserRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	purchaseRepo := repositories.NewCoinPurchaseRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtSvc, nil)
	directoryUsecase := usecases.NewAgentDirectoryUsecase(agentRepo)
	ledgerUsecase := usecases.NewCommissionLedgerUsecase(commissionRepo, agentRepo)
	escrowUsecase := usecases.NewPurchaseEscrowUsecase(purchaseRepo, agentRepo, userRepo, ledgerUsecase, uow)
	verificationUsecase := usecases.NewVerificationUsecase(verificationRepo, agentRepo, userRepo, directoryUsecase, uow)

	authHandler := NewAuthHandler(authUsecase)
	agentHandler := NewAgentHandler(directoryUsecase, ledgerUsecase)
	purchaseHandler := NewPurchaseHandler(escrowUsecase)
	verificationHandler := NewVerificationHandler(verificationUsecase)

	authMW := middleware.AuthMiddleware(jwtSvc)

	r := gin.New()
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authMW, authHandler.GetMe)

	agents := v1.Group("/agents", authMW)
	agents.GET("/available", agentHandler.ListAvailableAgents)
	agents.GET("/me", middleware.RequireRole(string(entities.UserRoleAgent)), agentHandler.GetMyAgentProfile)
	agents.GET("/commissions", middleware.RequireRole(string(entities.UserRoleAgent)), agentHandler.ListMyCommissions)

	purchases := v1.Group("/purchases", authMW)
	purchases.POST("", purchaseHandler.CreatePurchase)
	purchases.GET("/mine", purchaseHandler.ListMyPurchases)
	purchases.GET("/pending", middleware.RequireRole(string(entities.UserRoleAgent)), purchaseHandler.ListPendingPurchases)
	purchases.GET("/:id", purchaseHandler.GetPurchase)
	purchases.POST("/:id/confirm-payment", purchaseHandler.ConfirmPayment)
	purchases.POST("/:id/confirm-receipt", middleware.RequireRole(string(entities.UserRoleAgent)), purchaseHandler.ConfirmReceipt)

	verifications := v1.Group("/verifications", authMW)
	verifications.POST("", verificationHandler.SubmitVerification)
	verifications.GET("/mine", verificationHandler.ListMyVerifications)
	verifications.GET("/pending", middleware.RequireRole(string(entities.UserRoleAgent)), verificationHandler.ListPendingVerifications)
	verifications.POST("/:id/decide", middleware.RequireRole(string(entities.UserRoleAgent)), verificationHandler.DecideVerification)

	return &testEnv{
		db:       db,
		router:   r,
		jwtSvc:   jwtSvc,
		userRepo: userRepo,
		agents:   agentRepo,
	}
}

func createTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, q := range []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			tier INTEGER NOT NULL DEFAULT 1,
			coin_balance INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE agents (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			agent_code TEXT NOT NULL UNIQUE,
			coin_balance INTEGER NOT NULL DEFAULT 0 CHECK (coin_balance >= 0),
			trust_score INTEGER NOT NULL DEFAULT 0,
			state TEXT,
			city TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			total_verifications INTEGER NOT NULL DEFAULT 0,
			total_deposits INTEGER NOT NULL DEFAULT 0,
			commission_earned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE coin_purchases (
			id TEXT PRIMARY KEY,
			requester_id TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price_per_coin INTEGER NOT NULL,
			total_price INTEGER NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT,
			payment_proof TEXT,
			notes TEXT,
			expires_at DATETIME NOT NULL,
			completed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE verification_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			documents TEXT NOT NULL,
			notes TEXT,
			decided_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE commission_entries (
			id TEXT PRIMARY KEY,
			purchase_id TEXT NOT NULL UNIQUE,
			agent_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			created_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}
}

// seedUser inserts a user and returns it with a valid bearer token.
func (e *testEnv) seedUser(t *testing.T, role entities.UserRole, tier int) (*entities.User, string) {
	t.Helper()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         role,
		Tier:         tier,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), u))

	tokens, err := e.jwtSvc.GenerateTokenPair(u.ID, u.Email, string(role))
	require.NoError(t, err)
	return u, tokens.AccessToken
}

// seedAgent inserts an AGENT user plus its agent profile.
func (e *testEnv) seedAgent(t *testing.T, balance int64, trustScore int, city string) (*entities.Agent, string) {
	t.Helper()
	user, token := e.seedUser(t, entities.UserRoleAgent, 3)

	a := &entities.Agent{
		ID:          uuid.New(),
		UserID:      user.ID,
		AgentCode:   "AG-" + uuid.New().String()[:8],
		CoinBalance: balance,
		TrustScore:  trustScore,
		City:        city,
		IsActive:    true,
	}
	require.NoError(t, e.agents.Create(context.Background(), a))
	return a, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
