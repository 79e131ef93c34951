package board

import (
	"context"
	"fmt"
	"testing"

	"github.com/rafaelrch/koplai/domain"
)

type memColumnRepo struct {
	columns []domain.Column
	creates int
}

func (r *memColumnRepo) ListByView(_ context.Context, view domain.View) ([]domain.Column, error) {
	var out []domain.Column
	for _, c := range r.columns {
		if c.View == view {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memColumnRepo) GetByID(_ context.Context, id string) (*domain.Column, error) {
	for i := range r.columns {
		if r.columns[i].ID == id {
			c := r.columns[i]
			return &c, nil
		}
	}
	return nil, domain.ErrColumnNotFound
}

func (r *memColumnRepo) Create(_ context.Context, column *domain.Column) (*domain.Column, error) {
	r.creates++
	if column.ID == "" {
		column.ID = fmt.Sprintf("col-%d", r.creates)
	}
	r.columns = append(r.columns, *column)
	return column, nil
}

func (r *memColumnRepo) Update(_ context.Context, column *domain.Column) error {
	for i := range r.columns {
		if r.columns[i].ID == column.ID {
			r.columns[i] = *column
			return nil
		}
	}
	return domain.ErrColumnNotFound
}

func (r *memColumnRepo) Delete(_ context.Context, id string) error {
	for i := range r.columns {
		if r.columns[i].ID == id {
			r.columns = append(r.columns[:i], r.columns[i+1:]...)
			return nil
		}
	}
	return domain.ErrColumnNotFound
}

type memTaskRepo struct {
	tasks   []domain.Task
	creates int
	places  [][]domain.TaskPlacement
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			t := r.tasks[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *memTaskRepo) ListByView(_ context.Context, view domain.View) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.View == view {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListByColumn(_ context.Context, columnID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.creates++
	if task.ID == "" {
		task.ID = fmt.Sprintf("task-%d", r.creates)
	}
	r.tasks = append(r.tasks, *task)
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i].Title = task.Title
			r.tasks[i].Description = task.Description
			r.tasks[i].Links = task.Links
			r.tasks[i].Attachments = task.Attachments
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *memTaskRepo) Place(_ context.Context, placements []domain.TaskPlacement) error {
	r.places = append(r.places, placements)
	for _, p := range placements {
		for i := range r.tasks {
			if r.tasks[i].ID == p.TaskID {
				r.tasks[i].ColumnID = p.ColumnID
				r.tasks[i].Position = p.Position
			}
		}
	}
	return nil
}

func newTestUseCase(columns *memColumnRepo, tasks *memTaskRepo) *UseCase {
	return New(columns, tasks, nil, nil)
}

func TestLoadBoard_SortsByPosition(t *testing.T) {
	columns := &memColumnRepo{columns: []domain.Column{
		{ID: "b", Position: 1, View: domain.ViewDaily},
		{ID: "a", Position: 0, View: domain.ViewDaily},
	}}
	tasks := &memTaskRepo{tasks: []domain.Task{
		{ID: "t2", ColumnID: "a", Position: 1, View: domain.ViewDaily},
		{ID: "t1", ColumnID: "a", Position: 0, View: domain.ViewDaily},
		{ID: "t3", ColumnID: "b", Position: 0, View: domain.ViewDaily},
	}}

	board, err := newTestUseCase(columns, tasks).LoadBoard(context.Background(), domain.ViewDaily)
	if err != nil {
		t.Fatalf("LoadBoard returned error: %v", err)
	}

	if board.Columns[0].ID != "a" || board.Columns[1].ID != "b" {
		t.Fatalf("columns not sorted by position: %s, %s", board.Columns[0].ID, board.Columns[1].ID)
	}
	assertOrder(t, board.Columns[0], "t1", "t2")
	assertOrder(t, board.Columns[1], "t3")
}

func TestLoadBoard_RejectsUnknownView(t *testing.T) {
	_, err := newTestUseCase(&memColumnRepo{}, &memTaskRepo{}).LoadBoard(context.Background(), "weekly")
	if err != domain.ErrInvalidView {
		t.Fatalf("expected ErrInvalidView, got %v", err)
	}
}

func TestSeedDefaults_CreatesFourColumnsOnce(t *testing.T) {
	columns := &memColumnRepo{}
	uc := newTestUseCase(columns, &memTaskRepo{})

	created, err := uc.SeedDefaults(context.Background(), domain.ViewDaily)
	if err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("expected 4 default columns, got %d", len(created))
	}

	wantTitles := []string{"A Fazer", "Produzindo", "Em aprovação", "Concluído"}
	for i, col := range created {
		if col.Title != wantTitles[i] {
			t.Errorf("column %d: expected title %q, got %q", i, wantTitles[i], col.Title)
		}
		if col.Position != i {
			t.Errorf("column %d: expected position %d, got %d", i, i, col.Position)
		}
	}

	again, err := uc.SeedDefaults(context.Background(), domain.ViewDaily)
	if err != nil {
		t.Fatalf("second SeedDefaults returned error: %v", err)
	}
	if len(again) != 4 || columns.creates != 4 {
		t.Fatalf("expected seeding to be a no-op on a populated view, got %d columns after %d creates", len(again), columns.creates)
	}
}

func TestSeedDefaults_PartitionsAreIndependent(t *testing.T) {
	columns := &memColumnRepo{}
	uc := newTestUseCase(columns, &memTaskRepo{})

	if _, err := uc.SeedDefaults(context.Background(), domain.ViewDaily); err != nil {
		t.Fatalf("seed daily: %v", err)
	}
	if _, err := uc.SeedDefaults(context.Background(), domain.ViewApproval); err != nil {
		t.Fatalf("seed approval: %v", err)
	}
	if columns.creates != 8 {
		t.Fatalf("expected 8 columns across both views, got %d", columns.creates)
	}
}

func TestCreateTask_EmptyTitleRejectedBeforeRepository(t *testing.T) {
	tasks := &memTaskRepo{}
	uc := newTestUseCase(&memColumnRepo{columns: []domain.Column{{ID: "a", View: domain.ViewDaily}}}, tasks)

	_, err := uc.CreateTask(context.Background(), &domain.Task{ColumnID: "a", Title: "   "})
	if err != domain.ErrEmptyTaskTitle {
		t.Fatalf("expected ErrEmptyTaskTitle, got %v", err)
	}
	if tasks.creates != 0 {
		t.Fatalf("expected no repository call, got %d creates", tasks.creates)
	}
}

func TestCreateTask_AppendsToColumn(t *testing.T) {
	columns := &memColumnRepo{columns: []domain.Column{{ID: "a", View: domain.ViewDaily}}}
	tasks := &memTaskRepo{tasks: []domain.Task{{ID: "t1", ColumnID: "a", Position: 0, View: domain.ViewDaily}}}
	uc := newTestUseCase(columns, tasks)

	created, err := uc.CreateTask(context.Background(), &domain.Task{ColumnID: "a", Title: "Nova tarefa"})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if created.Position != 1 {
		t.Errorf("expected position 1, got %d", created.Position)
	}
	if created.View != domain.ViewDaily {
		t.Errorf("expected task to inherit the column's view, got %q", created.View)
	}
}

func TestDropTask_OntoColumnPersistsPlacements(t *testing.T) {
	columns := &memColumnRepo{columns: []domain.Column{
		{ID: "col-todo", Position: 0, View: domain.ViewDaily},
		{ID: "col-doing", Position: 1, View: domain.ViewDaily},
	}}
	tasks := &memTaskRepo{tasks: []domain.Task{
		{ID: "t1", ColumnID: "col-doing", Position: 0, View: domain.ViewDaily},
		{ID: "t2", ColumnID: "col-doing", Position: 1, View: domain.ViewDaily},
	}}
	uc := newTestUseCase(columns, tasks)

	board, err := uc.DropTask(context.Background(), "t1", "col-todo")
	if err != nil {
		t.Fatalf("DropTask returned error: %v", err)
	}

	assertOrder(t, board.Columns[0], "t1")
	assertOrder(t, board.Columns[1], "t2")

	if len(tasks.places) != 1 {
		t.Fatalf("expected one Place batch, got %d", len(tasks.places))
	}
	moved, _ := tasks.GetByID(context.Background(), "t1")
	if moved.ColumnID != "col-todo" || moved.Position != 0 {
		t.Errorf("repository not updated: column %s position %d", moved.ColumnID, moved.Position)
	}
}

func TestDropTask_SelfTargetDoesNotPersist(t *testing.T) {
	columns := &memColumnRepo{columns: []domain.Column{{ID: "col-doing", Position: 0, View: domain.ViewDaily}}}
	tasks := &memTaskRepo{tasks: []domain.Task{
		{ID: "t1", ColumnID: "col-doing", Position: 0, View: domain.ViewDaily},
	}}
	uc := newTestUseCase(columns, tasks)

	board, err := uc.DropTask(context.Background(), "t1", "t1")
	if err != nil {
		t.Fatalf("DropTask returned error: %v", err)
	}
	if len(tasks.places) != 0 {
		t.Fatalf("expected no Place batches for a self drop, got %d", len(tasks.places))
	}
	assertOrder(t, board.Columns[0], "t1")
}

func TestUpdateTask_EmptyTitleRejected(t *testing.T) {
	uc := newTestUseCase(&memColumnRepo{}, &memTaskRepo{tasks: []domain.Task{{ID: "t1", Title: "old"}}})

	if _, err := uc.UpdateTask(context.Background(), &domain.Task{ID: "t1", Title: ""}); err != domain.ErrEmptyTaskTitle {
		t.Fatalf("expected ErrEmptyTaskTitle, got %v", err)
	}
}

func TestCreateColumn_AppendsAtEnd(t *testing.T) {
	columns := &memColumnRepo{columns: []domain.Column{
		{ID: "a", Position: 0, View: domain.ViewDaily},
		{ID: "b", Position: 1, View: domain.ViewDaily},
	}}
	uc := newTestUseCase(columns, &memTaskRepo{})

	created, err := uc.CreateColumn(context.Background(), domain.ViewDaily, "Revisão", "#6366F1")
	if err != nil {
		t.Fatalf("CreateColumn returned error: %v", err)
	}
	if created.Position != 2 {
		t.Errorf("expected position 2, got %d", created.Position)
	}
}
