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

type PurchaseHandler struct {
	escrow *usecases.PurchaseEscrowUsecase
}

func NewPurchaseHandler(escrow *usecases.PurchaseEscrowUsecase) *PurchaseHandler {
	return &PurchaseHandler{escrow: escrow}
}

// CreatePurchase opens a coin purchase against a chosen agent
// POST /api/v1/purchases
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.CreateCoinPurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	purchase, err := h.escrow.CreatePurchase(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, purchase)
}

// ConfirmPayment records the requester's payment attestation
// POST /api/v1/purchases/:id/confirm-payment
func (h *PurchaseHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid purchase ID"))
		return
	}

	var input entities.ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	purchase, err := h.escrow.ConfirmPaymentSent(c.Request.Context(), userID, purchaseID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, purchase)
}

// ConfirmReceipt records the assigned agent's decision on a paid purchase
// POST /api/v1/purchases/:id/confirm-receipt
func (h *PurchaseHandler) ConfirmReceipt(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid purchase ID"))
		return
	}

	var input entities.ConfirmReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	purchase, err := h.escrow.ConfirmReceipt(c.Request.Context(), userID, purchaseID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, purchase)
}

// GetPurchase returns one purchase, visible to its requester or agent
// GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid purchase ID"))
		return
	}

	purchase, err := h.escrow.GetPurchase(c.Request.Context(), userID, purchaseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, purchase)
}

// ListMyPurchases lists the caller's purchases, newest first
// GET /api/v1/purchases/mine
func (h *PurchaseHandler) ListMyPurchases(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	purchases, total, err := h.escrow.ListRequesterPurchases(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"purchases":  purchases,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// ListPendingPurchases lists the agent's open queue, oldest first
// GET /api/v1/purchases/pending
func (h *PurchaseHandler) ListPendingPurchases(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	purchases, total, err := h.escrow.ListAgentQueue(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"purchases":  purchases,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
