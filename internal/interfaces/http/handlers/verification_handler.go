package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/interfaces/http/middleware"
	"charityhub.backend/internal/interfaces/http/response"
	"charityhub.backend/internal/usecases"
	"charityhub.backend/pkg/utils"
)

type VerificationHandler struct {
	usecase *usecases.VerificationUsecase
}

func NewVerificationHandler(usecase *usecases.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{usecase: usecase}
}

// SubmitVerification opens a tier-upgrade case
// POST /api/v1/verifications
func (h *VerificationHandler) SubmitVerification(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.SubmitVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.usecase.Submit(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// DecideVerification applies the assigned agent's decision
// POST /api/v1/verifications/:id/decide
func (h *VerificationHandler) DecideVerification(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid verification request ID"))
		return
	}

	var input entities.DecideVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.usecase.Decide(c.Request.Context(), userID, requestID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// ListMyVerifications lists the caller's verification cases
// GET /api/v1/verifications/mine
func (h *VerificationHandler) ListMyVerifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	requests, total, err := h.usecase.ListUserRequests(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"verifications": requests,
		"pagination":    utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// ListPendingVerifications lists the agent's undecided cases, oldest first
// GET /api/v1/verifications/pending
func (h *VerificationHandler) ListPendingVerifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	requests, total, err := h.usecase.ListAgentQueue(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"verifications": requests,
		"pagination":    utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
