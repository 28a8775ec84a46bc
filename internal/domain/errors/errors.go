package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidStateTransition     = errors.New("invalid state transition")
	ErrInsufficientAgentLiquidity = errors.New("insufficient agent liquidity")
	ErrAgentUnavailable           = errors.New("agent unavailable")
	ErrNotAssignedAgent           = errors.New("caller is not the assigned agent")
	ErrIncompleteDocuments        = errors.New("incomplete documents")
	ErrExpiredRecord              = errors.New("record has expired")
	ErrTierLimitExceeded          = errors.New("purchase exceeds tier limit")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// Escrow and verification error constructors
func InvalidStateTransition(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrInvalidStateTransition)
}

func InsufficientLiquidity(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrInsufficientAgentLiquidity)
}

func AgentUnavailable(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrAgentUnavailable)
}

func NotAssignedAgent(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrNotAssignedAgent)
}

func IncompleteDocuments(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrIncompleteDocuments)
}

func ExpiredRecord(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrExpiredRecord)
}

func TierLimitExceeded(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrTierLimitExceeded)
}
