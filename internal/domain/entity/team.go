package entity

import "time"

// Team represents a team row.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	LeadID      *int64    `json:"lead_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamInput carries the writable team fields for create and full update.
type TeamInput struct {
	Name        string
	Description *string
	LeadID      *int64
}
