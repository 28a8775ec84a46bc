package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/internal/interfaces/http/middleware"
	"charityhub.backend/internal/interfaces/http/response"
	"charityhub.backend/internal/usecases"
	"charityhub.backend/pkg/utils"
)

type AgentHandler struct {
	directory *usecases.AgentDirectoryUsecase
	ledger    *usecases.CommissionLedgerUsecase
}

func NewAgentHandler(
	directory *usecases.AgentDirectoryUsecase,
	ledger *usecases.CommissionLedgerUsecase,
) *AgentHandler {
	return &AgentHandler{directory: directory, ledger: ledger}
}

// ListAvailableAgents lists active agents able to serve a purchase
// GET /api/v1/agents/available
func (h *AgentHandler) ListAvailableAgents(c *gin.Context) {
	var filter entities.AgentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	agents, err := h.directory.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"agents": agents,
		"count":  len(agents),
	})
}

// ListMyCommissions lists the authenticated agent's commission entries
// GET /api/v1/agents/commissions
func (h *AgentHandler) ListMyCommissions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	agent, err := h.directory.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, total, err := h.ledger.ListAgentEntries(c.Request.Context(), agent.ID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// GetMyAgentProfile returns the authenticated agent's profile and stats
// GET /api/v1/agents/me
func (h *AgentHandler) GetMyAgentProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	agent, err := h.directory.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, agent)
}
