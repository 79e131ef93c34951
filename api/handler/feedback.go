package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/api/transport"
	"github.com/rafaelrch/koplai/pkg/httpcontext"
	feedbackUC "github.com/rafaelrch/koplai/usecase/feedback"
)

type FeedbackHandler struct {
	baseHandler
	uc *feedbackUC.UseCase
}

func NewFeedbackHandler(uc *feedbackUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Submit feedback
// @Tags feedback
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) Submit(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.FeedbackRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.uc.Submit(stdCtx, userID, req.Message, req.Page)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, entry)
}

// @Summary List feedback
// @Tags feedback
// @Router /api/v1/feedback [get]
func (h *FeedbackHandler) List(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.List(stdCtx, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
