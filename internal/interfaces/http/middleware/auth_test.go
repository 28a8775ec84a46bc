package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charityhub.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T, svc *jwt.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(svc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(t, svc)

	userID := uuid.New()
	tokens, err := svc.GenerateTokenPair(userID, "a@b.com", "USER")
	require.NoError(t, err)

	w := get(r, "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, tokens.AccessToken).Code, "missing Bearer prefix")
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-token").Code)

	// token signed with a different secret
	other := jwt.NewJWTService("other-secret", time.Minute, time.Hour)
	forged, err := other.GenerateTokenPair(userID, "a@b.com", "USER")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+forged.AccessToken).Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := jwt.NewJWTService("secret", -time.Minute, time.Hour)
	r := newAuthRouter(t, jwt.NewJWTService("secret", time.Minute, time.Hour))

	tokens, err := svc.GenerateTokenPair(uuid.New(), "a@b.com", "USER")
	require.NoError(t, err)

	w := get(r, "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestRequireRole(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(t, svc, RequireRole("AGENT", "ADMIN"))

	agent, err := svc.GenerateTokenPair(uuid.New(), "agent@b.com", "AGENT")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+agent.AccessToken).Code)

	user, err := svc.GenerateTokenPair(uuid.New(), "user@b.com", "USER")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+user.AccessToken).Code)
}
