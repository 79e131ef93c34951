package transport

import "github.com/rafaelrch/koplai/domain"

type ColumnRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
	View  string `json:"view_type"`
}

type TaskRequest struct {
	ID          string              `json:"id"`
	ColumnID    string              `json:"column_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Links       []domain.Link       `json:"links"`
	Attachments []domain.Attachment `json:"attachments"`
}

// MoveTaskRequest carries either an explicit target (column + index) or the
// raw drag target id (over_id) for the server to resolve.
type MoveTaskRequest struct {
	ColumnID string `json:"column_id"`
	Index    *int   `json:"index"`
	OverID   string `json:"over_id"`
}

type AgentRequest struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Prompt      string              `json:"prompt"`
	Tags        []string            `json:"tags"`
	Inputs      []domain.AgentInput `json:"inputs"`
}

type RunAgentRequest struct {
	Inputs map[string]string `json:"inputs"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type InviteRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

type AcceptInviteRequest struct {
	Token string `json:"token"`
}

type FeedbackRequest struct {
	Message string `json:"message"`
	Page    string `json:"page"`
}
