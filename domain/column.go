package domain

import "time"

// View partitions the kanban into independent boards sharing one schema.
type View string

const (
	ViewDaily    View = "daily"
	ViewApproval View = "approval"
)

// Valid reports whether v is one of the known board partitions.
func (v View) Valid() bool {
	return v == ViewDaily || v == ViewApproval
}

// Column is a named, ordered bucket of tasks within one board view.
type Column struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	View      View      `json:"view_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultColumns is the starter set created the first time a view is loaded.
func DefaultColumns(view View) []Column {
	return []Column{
		{Title: "A Fazer", Color: "#3B82F6", Position: 0, View: view},
		{Title: "Produzindo", Color: "#F59E0B", Position: 1, View: view},
		{Title: "Em aprovação", Color: "#EC4899", Position: 2, View: view},
		{Title: "Concluído", Color: "#10B981", Position: 3, View: view},
	}
}
