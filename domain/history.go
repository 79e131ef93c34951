package domain

import "time"

// HistoryEntry records one agent run: the inputs the user filled in and the
// generated output.
type HistoryEntry struct {
	ID        string            `json:"id"`
	AgentID   string            `json:"agent_id"`
	AgentName string            `json:"agent_name,omitempty"`
	UserID    string            `json:"user_id"`
	Input     map[string]string `json:"input"`
	Output    string            `json:"output"`
	CreatedAt time.Time         `json:"created_at"`
}
