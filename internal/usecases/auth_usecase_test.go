package usecases_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/usecases"
	"charityhub.backend/pkg/crypto"
	"charityhub.backend/pkg/jwt"
	redispkg "charityhub.backend/pkg/redis"
)

const testEncryptionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func newAuthUsecaseForTest(t *testing.T, userRepo *MockUserRepository, withSession bool) *usecases.AuthUsecase {
	t.Helper()
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	var store *redispkg.SessionStore
	if withSession {
		mr := miniredis.RunT(t)
		redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))

		var err error
		store, err = redispkg.NewSessionStore(testEncryptionKey)
		require.NoError(t, err)
	}

	return usecases.NewAuthUsecase(userRepo, jwtSvc, store)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", mock.Anything, "new@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).Return(nil).Once()

	resp, err := uc.Register(context.Background(), entities.RegisterInput{
		Email:    "new@mail.com",
		Name:     "New User",
		Password: "Password123!",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, entities.UserRoleUser, resp.User.Role)
	assert.Equal(t, entities.TierMin, resp.User.Tier, "new accounts start at the lowest tier")
	assert.NotEqual(t, "Password123!", resp.User.PasswordHash)
}

func TestAuthUsecase_Register_EmailAlreadyExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", mock.Anything, "exists@mail.com").Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.Register(context.Background(), entities.RegisterInput{
		Email:    "exists@mail.com",
		Name:     "Exists",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_InvalidCredentials(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", mock.Anything, "missing@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Login(context.Background(), entities.LoginInput{
		Email:    "missing@mail.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	hashed, _ := crypto.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleUser,
	}, nil).Once()
	_, err = uc.Login(context.Background(), entities.LoginInput{
		Email:    "user@mail.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	hashed, _ := crypto.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleUser,
	}, nil).Once()

	resp, err := uc.Login(context.Background(), entities.LoginInput{
		Email:    "user@mail.com",
		Password: "correct-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.SessionID)
}

func TestAuthUsecase_Login_WithSession(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, true)

	hashed, _ := crypto.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleUser,
	}, nil).Once()

	resp, err := uc.Login(context.Background(), entities.LoginInput{
		Email:      "user@mail.com",
		Password:   "correct-password",
		UseSession: true,
	})
	assert.NoError(t, err)
	// tokens stay server side
	assert.Empty(t, resp.AccessToken)
	assert.Empty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, strings.Contains(resp.SessionID, " "))

	store, err := redispkg.NewSessionStore(testEncryptionKey)
	require.NoError(t, err)
	data, err := store.GetSession(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, data.AccessToken)
}

func TestAuthUsecase_GetMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, Email: "me@mail.com"}, nil).Once()

	user, err := uc.GetMe(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, "me@mail.com", user.Email)

	missing := uuid.New()
	userRepo.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.GetMe(context.Background(), missing)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
