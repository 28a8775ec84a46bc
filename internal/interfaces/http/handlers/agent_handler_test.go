package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charityhub.backend/internal/domain/entities"
)

func TestAgentHandler_GetMyAgentProfile(t *testing.T) {
	env := newTestEnv(t)
	agent, agentToken := env.seedAgent(t, 750, 85, "Lagos")
	_, userToken := env.seedUser(t, entities.UserRoleUser, 1)

	w := env.do(t, http.MethodGet, "/api/v1/agents/me", agentToken, nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Equal(t, agent.ID.String(), body["id"])
	assert.Equal(t, agent.AgentCode, body["agentCode"])
	assert.Equal(t, float64(750), body["coinBalance"])

	// role gated
	w = env.do(t, http.MethodGet, "/api/v1/agents/me", userToken, nil)
	requireStatus(t, w, http.StatusForbidden)

	w = env.do(t, http.MethodGet, "/api/v1/agents/me", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestAgentHandler_GetMyAgentProfile_NoProfile(t *testing.T) {
	env := newTestEnv(t)
	// AGENT role token without a matching agent row
	_, token := env.seedUser(t, entities.UserRoleAgent, 3)

	w := env.do(t, http.MethodGet, "/api/v1/agents/me", token, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestAgentHandler_ListMyCommissions_Empty(t *testing.T) {
	env := newTestEnv(t)
	_, agentToken := env.seedAgent(t, 500, 70, "Ibadan")

	w := env.do(t, http.MethodGet, "/api/v1/agents/commissions", agentToken, nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Empty(t, body["entries"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(0), pagination["totalCount"])
}

func TestAgentHandler_ListMyCommissions_AccruesPerCompletedPurchase(t *testing.T) {
	env := newTestEnv(t)
	agent, agentToken := env.seedAgent(t, 1000, 80, "Lagos")
	_, token := env.seedUser(t, entities.UserRoleUser, 1)

	received := true
	for _, qty := range []int64{10, 20} {
		purchase := createPurchase(t, env, token, agent.ID, qty)
		id := purchase["id"].(string)
		requireStatus(t, env.do(t, http.MethodPost, "/api/v1/purchases/"+id+"/confirm-payment", token, entities.ConfirmPaymentInput{
			PaymentMethod: "bank_transfer",
		}), http.StatusOK)
		requireStatus(t, env.do(t, http.MethodPost, "/api/v1/purchases/"+id+"/confirm-receipt", agentToken, entities.ConfirmReceiptInput{
			Received: &received,
		}), http.StatusOK)
	}

	w := env.do(t, http.MethodGet, "/api/v1/agents/commissions", agentToken, nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	entries := body["entries"].([]interface{})
	require.Len(t, entries, 2)

	var total float64
	for _, raw := range entries {
		total += raw.(map[string]interface{})["amount"].(float64)
	}
	// 2% of 5000 plus 2% of 10000
	assert.Equal(t, float64(300), total)
}

func TestAgentHandler_ListAvailable_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	env.seedAgent(t, 1000, 80, "Lagos")

	w := env.do(t, http.MethodGet, "/api/v1/agents/available", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)
}
