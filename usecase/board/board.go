package board

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
	"github.com/rafaelrch/koplai/usecase"
)

// UseCase owns the kanban board semantics: loading views, seeding defaults,
// column/task CRUD and the move operation. Every mutation persists first and
// only then reports the new state (pessimistic apply).
type UseCase struct {
	columns repository.ColumnRepository
	tasks   repository.TaskRepository
	buffer  usecase.OperationBuffer
	logger  *zap.Logger
}

func New(columns repository.ColumnRepository, tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		columns: columns,
		tasks:   tasks,
		buffer:  buffer,
		logger:  logger,
	}
}

// LoadBoard returns the full board for a view, seeding the default columns
// when the partition is empty.
func (uc *UseCase) LoadBoard(ctx context.Context, view domain.View) (*domain.Board, error) {
	if !view.Valid() {
		return nil, domain.ErrInvalidView
	}

	columns, err := uc.columns.ListByView(ctx, view)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar o quadro", err)
	}

	if len(columns) == 0 {
		columns, err = uc.SeedDefaults(ctx, view)
		if err != nil {
			return nil, err
		}
	}

	tasks, err := uc.tasks.ListByView(ctx, view)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar as tarefas", err)
	}

	board := domain.AssembleBoard(view, columns, tasks)
	return &board, nil
}

// SeedDefaults creates the fixed starter columns for an empty view. The
// emptiness check is not safe under concurrent first loads, matching the
// product's original behavior.
func (uc *UseCase) SeedDefaults(ctx context.Context, view domain.View) ([]domain.Column, error) {
	if !view.Valid() {
		return nil, domain.ErrInvalidView
	}

	existing, err := uc.columns.ListByView(ctx, view)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar o quadro", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	defaults := domain.DefaultColumns(view)
	created := make([]domain.Column, 0, len(defaults))
	for i := range defaults {
		col, err := uc.columns.Create(ctx, &defaults[i])
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar colunas padrão", err)
		}
		created = append(created, *col)
	}
	uc.logger.Info("seeded default columns", zap.String("view", string(view)), zap.Int("count", len(created)))
	return created, nil
}

// CreateColumn appends a new column at the end of the view.
func (uc *UseCase) CreateColumn(ctx context.Context, view domain.View, title, color string) (*domain.Column, error) {
	if !view.Valid() {
		return nil, domain.ErrInvalidView
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.columns.ListByView(ctx, view)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar coluna", err)
	}

	column := &domain.Column{
		Title:    strings.TrimSpace(title),
		Color:    color,
		Position: len(existing),
		View:     view,
	}
	created, err := uc.columns.Create(ctx, column)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar coluna", err)
	}
	return created, nil
}

// RenameColumn updates display fields only; the position is untouched.
func (uc *UseCase) RenameColumn(ctx context.Context, id, title, color string) (*domain.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidPayload
	}

	column, err := uc.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	column.Title = strings.TrimSpace(title)
	if color != "" {
		column.Color = color
	}
	if err := uc.columns.Update(ctx, column); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar coluna", err)
	}
	return column, nil
}

// DeleteColumn removes the column and everything it holds.
func (uc *UseCase) DeleteColumn(ctx context.Context, id string) error {
	if err := uc.columns.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInternal, "erro ao excluir coluna", err)
	}
	return nil
}

// CreateTask appends a task to the named column. The title is required and
// checked before any repository call.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, domain.ErrEmptyTaskTitle
	}

	column, err := uc.columns.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	task.View = column.View

	siblings, err := uc.tasks.ListByColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar tarefa", err)
	}
	task.Position = len(siblings)

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar tarefa", err)
	}
	return created, nil
}

// UpdateTask replaces a task's mutable fields. Column and position are
// preserved; moves go through MoveTask.
func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, domain.ErrEmptyTaskTitle
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar tarefa", err)
	}
	return task, nil
}

// DeleteTask removes the task from whichever column currently holds it.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id}) {
			return nil
		}
		return domain.WrapError(domain.ErrCodeInternal, "erro ao excluir tarefa", err)
	}
	return nil
}

// MoveTask relocates a task to targetColumnID at targetIndex (clamped to the
// column length) and persists the renumbered positions of every affected
// sibling.
func (uc *UseCase) MoveTask(ctx context.Context, taskID, targetColumnID string, targetIndex int) (*domain.Board, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	current, err := uc.LoadBoard(ctx, task.View)
	if err != nil {
		return nil, err
	}

	next, placements, err := PlanMove(*current, taskID, targetColumnID, targetIndex)
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return current, nil
	}

	if err := uc.tasks.Place(ctx, placements); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao mover tarefa", err)
	}
	return &next, nil
}

// DropTask resolves a drag gesture's end target into a move. A missing or
// self target is a no-op and returns the board unchanged.
func (uc *UseCase) DropTask(ctx context.Context, activeTaskID, overID string) (*domain.Board, error) {
	task, err := uc.tasks.GetByID(ctx, activeTaskID)
	if err != nil {
		return nil, err
	}

	current, err := uc.LoadBoard(ctx, task.View)
	if err != nil {
		return nil, err
	}

	columnID, index, ok := ResolveDrop(*current, activeTaskID, overID)
	if !ok {
		return current, nil
	}

	next, placements, err := PlanMove(*current, activeTaskID, columnID, index)
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return current, nil
	}

	if err := uc.tasks.Place(ctx, placements); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao mover tarefa", err)
	}
	return &next, nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation), zap.String("task_id", task.ID))
	return true
}
