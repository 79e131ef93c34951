package board

import (
	"testing"

	"github.com/rafaelrch/koplai/domain"
)

func testBoard() domain.Board {
	return domain.AssembleBoard(domain.ViewDaily,
		[]domain.Column{
			{ID: "col-todo", Title: "A Fazer", Position: 0, View: domain.ViewDaily},
			{ID: "col-doing", Title: "Em Progresso", Position: 1, View: domain.ViewDaily},
		},
		[]domain.Task{
			{ID: "t1", ColumnID: "col-doing", Title: "T1", Position: 0, View: domain.ViewDaily},
			{ID: "t2", ColumnID: "col-doing", Title: "T2", Position: 1, View: domain.ViewDaily},
		},
	)
}

func taskIDs(col domain.BoardColumn) []string {
	ids := make([]string, len(col.Tasks))
	for i, t := range col.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func assertOrder(t *testing.T, col domain.BoardColumn, want ...string) {
	t.Helper()
	got := taskIDs(col)
	if len(got) != len(want) {
		t.Fatalf("column %s: expected tasks %v, got %v", col.Title, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %s: expected tasks %v, got %v", col.Title, want, got)
		}
	}
	for i, task := range col.Tasks {
		if task.Position != i {
			t.Errorf("column %s: task %s has position %d, expected %d", col.Title, task.ID, task.Position, i)
		}
		if task.ColumnID != col.ID {
			t.Errorf("column %s: task %s references column %s", col.Title, task.ID, task.ColumnID)
		}
	}
}

func TestPlanMove_CrossColumn(t *testing.T) {
	b := testBoard()

	next, placements, err := PlanMove(b, "t1", "col-todo", 0)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}

	assertOrder(t, next.Columns[0], "t1")
	assertOrder(t, next.Columns[1], "t2")

	if len(placements) != 2 {
		t.Fatalf("expected 2 placements (moved task + shifted sibling), got %d", len(placements))
	}
}

func TestPlanMove_IndexBeyondLengthAppends(t *testing.T) {
	b := testBoard()

	next, _, err := PlanMove(b, "t1", "col-todo", 99)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}
	assertOrder(t, next.Columns[0], "t1")

	next, _, err = PlanMove(next, "t2", "col-todo", 99)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}
	assertOrder(t, next.Columns[0], "t1", "t2")
}

func TestPlanMove_NegativeIndexClampsToFront(t *testing.T) {
	b := testBoard()

	next, _, err := PlanMove(b, "t2", "col-doing", -3)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}
	assertOrder(t, next.Columns[1], "t2", "t1")
}

func TestPlanMove_SamePositionIsNoOp(t *testing.T) {
	b := testBoard()

	next, placements, err := PlanMove(b, "t1", "col-doing", 0)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}
	if len(placements) != 0 {
		t.Fatalf("expected no placements for an effect-free move, got %v", placements)
	}
	assertOrder(t, next.Columns[1], "t1", "t2")
}

func TestPlanMove_PreservesTaskSet(t *testing.T) {
	b := domain.AssembleBoard(domain.ViewDaily,
		[]domain.Column{
			{ID: "a", Position: 0},
			{ID: "b", Position: 1},
			{ID: "c", Position: 2},
		},
		[]domain.Task{
			{ID: "t1", ColumnID: "a", Position: 0},
			{ID: "t2", ColumnID: "a", Position: 1},
			{ID: "t3", ColumnID: "b", Position: 0},
		},
	)

	moves := []struct {
		task   string
		column string
		index  int
	}{
		{"t1", "b", 1},
		{"t3", "c", 0},
		{"t2", "a", 0},
		{"t1", "a", 5},
	}

	for _, mv := range moves {
		var err error
		b, _, err = PlanMove(b, mv.task, mv.column, mv.index)
		if err != nil {
			t.Fatalf("PlanMove(%s, %s, %d) returned error: %v", mv.task, mv.column, mv.index, err)
		}

		seen := map[string]int{}
		for _, col := range b.Columns {
			for _, task := range col.Tasks {
				seen[task.ID]++
			}
		}
		if len(seen) != 3 {
			t.Fatalf("after moving %s: expected 3 distinct tasks, got %d", mv.task, len(seen))
		}
		for id, count := range seen {
			if count != 1 {
				t.Fatalf("after moving %s: task %s appears %d times", mv.task, id, count)
			}
		}
	}
}

func TestPlanMove_UnknownTask(t *testing.T) {
	b := testBoard()
	if _, _, err := PlanMove(b, "missing", "col-todo", 0); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestPlanMove_UnknownColumn(t *testing.T) {
	b := testBoard()
	if _, _, err := PlanMove(b, "t1", "missing", 0); err != domain.ErrColumnNotFound {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestResolveDrop_EmptyTargetIsNoOp(t *testing.T) {
	b := testBoard()
	if _, _, ok := ResolveDrop(b, "t1", ""); ok {
		t.Error("expected no move for an empty drop target")
	}
}

func TestResolveDrop_SelfIsNoOp(t *testing.T) {
	b := testBoard()
	if _, _, ok := ResolveDrop(b, "t1", "t1"); ok {
		t.Error("expected no move when a task is dropped onto itself")
	}
}

func TestResolveDrop_ColumnAppendsToEnd(t *testing.T) {
	b := testBoard()

	columnID, index, ok := ResolveDrop(b, "t1", "col-todo")
	if !ok {
		t.Fatal("expected a move when dropping onto a column")
	}
	if columnID != "col-todo" || index != 0 {
		t.Fatalf("expected (col-todo, 0), got (%s, %d)", columnID, index)
	}
}

func TestResolveDrop_TaskInsertsBefore(t *testing.T) {
	b := testBoard()

	columnID, index, ok := ResolveDrop(b, "t1", "t2")
	if !ok {
		t.Fatal("expected a move when dropping onto another task")
	}
	if columnID != "col-doing" || index != 1 {
		t.Fatalf("expected (col-doing, 1), got (%s, %d)", columnID, index)
	}
}

// Dragging T1 from "Em Progresso" onto the empty "A Fazer" column leaves
// "A Fazer": [T1] and "Em Progresso": [T2].
func TestScenario_DropOntoEmptyColumn(t *testing.T) {
	b := testBoard()

	columnID, index, ok := ResolveDrop(b, "t1", "col-todo")
	if !ok {
		t.Fatal("expected a move")
	}
	next, _, err := PlanMove(b, "t1", columnID, index)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}

	assertOrder(t, next.Columns[0], "t1")
	assertOrder(t, next.Columns[1], "t2")
}

// With [T1, T2, T3] in one column, dragging T3 directly onto T1 yields
// [T3, T1, T2].
func TestScenario_InColumnReorder(t *testing.T) {
	b := domain.AssembleBoard(domain.ViewDaily,
		[]domain.Column{{ID: "col-todo", Title: "A Fazer", Position: 0}},
		[]domain.Task{
			{ID: "t1", ColumnID: "col-todo", Position: 0},
			{ID: "t2", ColumnID: "col-todo", Position: 1},
			{ID: "t3", ColumnID: "col-todo", Position: 2},
		},
	)

	columnID, index, ok := ResolveDrop(b, "t3", "t1")
	if !ok {
		t.Fatal("expected a move")
	}
	next, _, err := PlanMove(b, "t3", columnID, index)
	if err != nil {
		t.Fatalf("PlanMove returned error: %v", err)
	}

	assertOrder(t, next.Columns[0], "t3", "t1", "t2")
}
