package meeting

import "time"

// CreateMeetingRequest is the body for POST /meetings
type CreateMeetingRequest struct {
	TeamID      string  `json:"team_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

// UpdateMeetingRequest is the body for PUT /meetings/:id; omitted fields are unchanged
type UpdateMeetingRequest struct {
	TeamID      *string `json:"team_id,omitempty" validate:"omitempty,uuid"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
}

// MeetingResponse is a meeting
type MeetingResponse struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsArchived  bool       `json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
