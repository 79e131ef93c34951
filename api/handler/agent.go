package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/api/transport"
	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/pkg/httpcontext"
	agentUC "github.com/rafaelrch/koplai/usecase/agent"
)

type AgentHandler struct {
	baseHandler
	uc *agentUC.UseCase
}

func NewAgentHandler(uc *agentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List agents
// @Tags agents
// @Router /api/v1/agents [get]
func (h *AgentHandler) ListAgents(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	agents, err := h.uc.ListAgents(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, agents)
}

// @Summary Get agent
// @Tags agents
// @Router /api/v1/agents/{id} [get]
func (h *AgentHandler) GetAgent(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing agent id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	agent, err := h.uc.GetAgent(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, agent)
}

// @Summary Create agent
// @Tags agents
// @Router /api/v1/agents [post]
func (h *AgentHandler) CreateAgent(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	agent, ok := h.parseAgent(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateAgent(stdCtx, agent)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update agent
// @Tags agents
// @Router /api/v1/agents/{id} [put]
func (h *AgentHandler) UpdateAgent(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	agent, ok := h.parseAgent(ctx)
	if !ok {
		return
	}
	if agent.ID == "" {
		agent.ID = pathID(ctx)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateAgent(stdCtx, agent)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete agent
// @Tags agents
// @Router /api/v1/agents/{id} [delete]
func (h *AgentHandler) DeleteAgent(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing agent id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteAgent(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Run agent
// @Tags agents
// @Router /api/v1/agents/{id}/run [post]
func (h *AgentHandler) RunAgent(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing agent id")
		return
	}

	var req transport.RunAgentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.uc.RunAgent(stdCtx, id, userID, req.Inputs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entry)
}

// @Summary List run history
// @Tags agents
// @Router /api/v1/history [get]
func (h *AgentHandler) ListHistory(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.ListHistory(stdCtx, userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

func (h *AgentHandler) parseAgent(ctx *fasthttp.RequestCtx) (*domain.Agent, bool) {
	var req transport.AgentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	agent := &domain.Agent{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Prompt:      req.Prompt,
		Tags:        req.Tags,
		Inputs:      req.Inputs,
	}
	return agent, true
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
