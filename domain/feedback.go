package domain

import "time"

// Feedback is a message submitted through the in-app feedback widget.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Page      string    `json:"page,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
