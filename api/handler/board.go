package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/api/transport"
	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/pkg/httpcontext"
	boardUC "github.com/rafaelrch/koplai/usecase/board"
)

type BoardHandler struct {
	baseHandler
	uc *boardUC.UseCase
}

func NewBoardHandler(uc *boardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Load a board view
// @Tags kanban
// @Router /api/v1/kanban/{view} [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	rawView, _ := ctx.UserValue("view").(string)
	view := domain.View(rawView)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := h.uc.LoadBoard(stdCtx, view)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board)
}

// @Summary Create column
// @Tags kanban
// @Router /api/v1/kanban/columns [post]
func (h *BoardHandler) CreateColumn(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	var req transport.ColumnRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	column, err := h.uc.CreateColumn(stdCtx, domain.View(req.View), req.Title, req.Color)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, column)
}

// @Summary Rename column
// @Tags kanban
// @Router /api/v1/kanban/columns/{id} [put]
func (h *BoardHandler) UpdateColumn(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing column id")
		return
	}

	var req transport.ColumnRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	column, err := h.uc.RenameColumn(stdCtx, id, req.Title, req.Color)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, column)
}

// @Summary Delete column and its tasks
// @Tags kanban
// @Router /api/v1/kanban/columns/{id} [delete]
func (h *BoardHandler) DeleteColumn(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing column id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteColumn(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Create task
// @Tags kanban
// @Router /api/v1/kanban/tasks [post]
func (h *BoardHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	task, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags kanban
// @Router /api/v1/kanban/tasks/{id} [put]
func (h *BoardHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	task, ok := h.parseTask(ctx)
	if !ok {
		return
	}
	if task.ID == "" {
		task.ID = pathID(ctx)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags kanban
// @Router /api/v1/kanban/tasks/{id} [delete]
func (h *BoardHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Move task
// @Tags kanban
// @Router /api/v1/kanban/tasks/{id}/move [post]
func (h *BoardHandler) MoveTask(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.MoveTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		board *domain.Board
		err   error
	)
	switch {
	case req.OverID != "":
		board, err = h.uc.DropTask(stdCtx, id, req.OverID)
	case req.ColumnID != "":
		// a missing index appends; MoveTask clamps to the column length
		index := 1 << 30
		if req.Index != nil {
			index = *req.Index
		}
		board, err = h.uc.MoveTask(stdCtx, id, req.ColumnID, index)
	default:
		h.respondInvalid(ctx, "missing move target")
		return
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board)
}

func (h *BoardHandler) parseTask(ctx *fasthttp.RequestCtx) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	task := &domain.Task{
		ID:          req.ID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Links:       req.Links,
		Attachments: req.Attachments,
	}
	return task, true
}
