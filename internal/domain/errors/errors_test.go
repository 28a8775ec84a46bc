package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "bad", ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.ErrorIs(t, notFound, ErrNotFound)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.ErrorIs(t, conflict, ErrAlreadyExists)

	unauth := Unauthorized("unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Code)

	forbidden := Forbidden("forbidden")
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "db down", internal.Error())
	assert.Equal(t, "internal server error", internal.Message)
}

func TestAppError_EscrowConstructors(t *testing.T) {
	transition := InvalidStateTransition("already decided")
	assert.Equal(t, http.StatusConflict, transition.Code)
	assert.ErrorIs(t, transition, ErrInvalidStateTransition)

	liquidity := InsufficientLiquidity("not enough coins")
	assert.Equal(t, http.StatusUnprocessableEntity, liquidity.Code)
	assert.ErrorIs(t, liquidity, ErrInsufficientAgentLiquidity)

	unavailable := AgentUnavailable("nobody home")
	assert.Equal(t, http.StatusUnprocessableEntity, unavailable.Code)
	assert.ErrorIs(t, unavailable, ErrAgentUnavailable)

	notAssigned := NotAssignedAgent("someone else's case")
	assert.Equal(t, http.StatusForbidden, notAssigned.Code)
	assert.ErrorIs(t, notAssigned, ErrNotAssignedAgent)

	incomplete := IncompleteDocuments("missing utility bill")
	assert.Equal(t, http.StatusBadRequest, incomplete.Code)
	assert.ErrorIs(t, incomplete, ErrIncompleteDocuments)

	expired := ExpiredRecord("too late")
	assert.Equal(t, http.StatusConflict, expired.Code)
	assert.ErrorIs(t, expired, ErrExpiredRecord)

	tier := TierLimitExceeded("upgrade first")
	assert.Equal(t, http.StatusUnprocessableEntity, tier.Code)
	assert.ErrorIs(t, tier, ErrTierLimitExceeded)
}

func TestAppError_MessageFallback(t *testing.T) {
	err := &AppError{Code: http.StatusTeapot, Message: "just a message"}
	assert.Equal(t, "just a message", err.Error())
	assert.Nil(t, err.Unwrap())
}
