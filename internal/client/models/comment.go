package models

import "time"

// Comment belongs to exactly one ticket and is immutable once created.
type Comment struct {
	ID          string     `json:"id"`
	TicketID    string     `json:"ticket_id"`
	CreatedBy   string     `json:"created_by"`
	Creator     User       `json:"creator"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
