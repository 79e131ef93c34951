package domain

import "sort"

// BoardColumn is a column together with its position-ordered tasks.
type BoardColumn struct {
	Column
	Tasks []Task `json:"tasks"`
}

// Board is the full ordered set of columns (and their tasks) for one view.
type Board struct {
	View    View          `json:"view_type"`
	Columns []BoardColumn `json:"columns"`
}

// AssembleBoard groups tasks under their columns, sorting columns and tasks
// ascending by position. Tasks referencing an unknown column are dropped.
func AssembleBoard(view View, columns []Column, tasks []Task) Board {
	sorted := make([]Column, len(columns))
	copy(sorted, columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	byColumn := make(map[string][]Task, len(sorted))
	for _, task := range tasks {
		byColumn[task.ColumnID] = append(byColumn[task.ColumnID], task)
	}

	board := Board{View: view, Columns: make([]BoardColumn, 0, len(sorted))}
	for _, col := range sorted {
		colTasks := byColumn[col.ID]
		sort.SliceStable(colTasks, func(i, j int) bool {
			return colTasks[i].Position < colTasks[j].Position
		})
		if colTasks == nil {
			colTasks = []Task{}
		}
		board.Columns = append(board.Columns, BoardColumn{Column: col, Tasks: colTasks})
	}
	return board
}

// FindColumn returns the index of the column with the given id, or -1.
func (b Board) FindColumn(columnID string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

// FindTask locates a task by id, returning its column index and index within
// the column, or (-1, -1) when absent.
func (b Board) FindTask(taskID string) (int, int) {
	for ci := range b.Columns {
		for ti := range b.Columns[ci].Tasks {
			if b.Columns[ci].Tasks[ti].ID == taskID {
				return ci, ti
			}
		}
	}
	return -1, -1
}

// TaskPlacement is a persisted (column, position) assignment for one task.
type TaskPlacement struct {
	TaskID   string `json:"task_id"`
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}
