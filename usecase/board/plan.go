package board

import "github.com/rafaelrch/koplai/domain"

// ResolveDrop translates the identity a drag ended over into a concrete
// (column, index) destination:
//
//   - no target, or the task dropped onto itself: no move
//   - a column (empty column or column background): append at the end
//   - another task: insert before it, at that task's current index
//
// The bool result reports whether a move should happen at all.
func ResolveDrop(b domain.Board, activeTaskID, overID string) (string, int, bool) {
	if overID == "" || overID == activeTaskID {
		return "", 0, false
	}

	if ci := b.FindColumn(overID); ci >= 0 {
		return overID, len(b.Columns[ci].Tasks), true
	}

	if ci, ti := b.FindTask(overID); ci >= 0 {
		return b.Columns[ci].ID, ti, true
	}

	return "", 0, false
}

// PlanMove computes the board that results from moving taskID into
// targetColumnID at targetIndex, clamping the index to [0, len]. When source
// and target coincide this is an in-place reorder. Positions in the affected
// columns are renumbered densely from zero; the returned placements carry
// every assignment that differs from the input board, so an effect-free move
// yields no placements.
func PlanMove(b domain.Board, taskID, targetColumnID string, targetIndex int) (domain.Board, []domain.TaskPlacement, error) {
	srcCol, srcIdx := b.FindTask(taskID)
	if srcCol < 0 {
		return b, nil, domain.ErrTaskNotFound
	}
	dstCol := b.FindColumn(targetColumnID)
	if dstCol < 0 {
		return b, nil, domain.ErrColumnNotFound
	}

	next := cloneBoard(b)

	task := next.Columns[srcCol].Tasks[srcIdx]
	next.Columns[srcCol].Tasks = append(
		next.Columns[srcCol].Tasks[:srcIdx],
		next.Columns[srcCol].Tasks[srcIdx+1:]...,
	)

	if targetIndex < 0 {
		targetIndex = 0
	}
	if max := len(next.Columns[dstCol].Tasks); targetIndex > max {
		targetIndex = max
	}

	task.ColumnID = next.Columns[dstCol].ID
	dst := next.Columns[dstCol].Tasks
	dst = append(dst, domain.Task{})
	copy(dst[targetIndex+1:], dst[targetIndex:])
	dst[targetIndex] = task
	next.Columns[dstCol].Tasks = dst

	renumber(&next.Columns[srcCol])
	if dstCol != srcCol {
		renumber(&next.Columns[dstCol])
	}

	return next, diffPlacements(b, next, srcCol, dstCol), nil
}

func renumber(col *domain.BoardColumn) {
	for i := range col.Tasks {
		col.Tasks[i].Position = i
	}
}

func diffPlacements(before, after domain.Board, cols ...int) []domain.TaskPlacement {
	prior := make(map[string]domain.TaskPlacement)
	for _, bc := range before.Columns {
		for _, t := range bc.Tasks {
			prior[t.ID] = domain.TaskPlacement{TaskID: t.ID, ColumnID: t.ColumnID, Position: t.Position}
		}
	}

	seen := make(map[int]bool, len(cols))
	var placements []domain.TaskPlacement
	for _, ci := range cols {
		if seen[ci] {
			continue
		}
		seen[ci] = true
		for _, t := range after.Columns[ci].Tasks {
			placement := domain.TaskPlacement{TaskID: t.ID, ColumnID: t.ColumnID, Position: t.Position}
			if prior[t.ID] != placement {
				placements = append(placements, placement)
			}
		}
	}
	return placements
}

func cloneBoard(b domain.Board) domain.Board {
	next := domain.Board{View: b.View, Columns: make([]domain.BoardColumn, len(b.Columns))}
	for i, col := range b.Columns {
		tasks := make([]domain.Task, len(col.Tasks))
		copy(tasks, col.Tasks)
		next.Columns[i] = domain.BoardColumn{Column: col.Column, Tasks: tasks}
	}
	return next
}
