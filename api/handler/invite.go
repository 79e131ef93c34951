package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/api/transport"
	"github.com/rafaelrch/koplai/pkg/httpcontext"
	inviteUC "github.com/rafaelrch/koplai/usecase/invite"
)

type InviteHandler struct {
	baseHandler
	uc *inviteUC.UseCase
}

func NewInviteHandler(uc *inviteUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *InviteHandler {
	return &InviteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Invite a teammate
// @Tags team
// @Router /api/v1/invites [post]
func (h *InviteHandler) CreateInvite(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.InviteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	invitation, err := h.uc.CreateInvite(stdCtx, userID, req.Email, req.Role, req.Position)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, invitation)
}

// @Summary Accept an invitation
// @Tags team
// @Router /api/v1/invites/accept [post]
func (h *InviteHandler) AcceptInvite(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.AcceptInviteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Token == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	invitation, err := h.uc.AcceptInvite(stdCtx, req.Token, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, invitation)
}

// @Summary List pending invitations
// @Tags team
// @Router /api/v1/invites [get]
func (h *InviteHandler) ListInvites(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	invitations, err := h.uc.ListInvites(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, invitations)
}

// @Summary List team roster
// @Tags team
// @Router /api/v1/team [get]
func (h *InviteHandler) ListTeam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	team, err := h.uc.ListTeam(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, team)
}
