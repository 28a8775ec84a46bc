package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	domainRepos "charityhub.backend/internal/domain/repositories"
	"charityhub.backend/pkg/crypto"
	"charityhub.backend/pkg/jwt"
	"charityhub.backend/pkg/redis"
	"charityhub.backend/pkg/utils"
)

// SessionExpiry is how long a Redis-backed session lives
const SessionExpiry = 7 * 24 * time.Hour

// AuthUsecase handles registration and login
type AuthUsecase struct {
	userRepo     domainRepos.UserRepository
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
}

func NewAuthUsecase(
	userRepo domainRepos.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a tier-1 user account
func (uc *AuthUsecase) Register(ctx context.Context, input entities.RegisterInput) (*entities.AuthResponse, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		Tier:         entities.TierMin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	tokens, err := uc.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates a user and issues tokens. With UseSession the token
// pair is held server side in Redis and only a session id returns.
func (uc *AuthUsecase) Login(ctx context.Context, input entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	tokens, err := uc.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if input.UseSession && uc.sessionStore != nil {
		sessionID, err := crypto.GenerateRandomToken(16)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		err = uc.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}, SessionExpiry)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// GetMe returns the authenticated user's profile
func (uc *AuthUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}
