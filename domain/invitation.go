package domain

import "time"

// Invitation statuses.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// Invitation is a pending request for someone to join a company.
type Invitation struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Position  string    `json:"position,omitempty"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Invitation) IsExpired(reference time.Time) bool {
	if i == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !i.ExpiresAt.After(reference)
}
