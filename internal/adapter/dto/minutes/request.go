package minutes

// ItemRequest is one row of a minute's item table
type ItemRequest struct {
	ID       *string `json:"id,omitempty" validate:"omitempty,uuid"`
	Agenda   string  `json:"agenda"`
	Decision string  `json:"decision"`
	Issue    string  `json:"issue"`
	Action   string  `json:"action"`
	Assignee string  `json:"assignee"`
	Deadline *string `json:"deadline,omitempty"`
	Purpose  string  `json:"purpose"`
	Status   string  `json:"status" validate:"itemstatus"`
	Notes1   string  `json:"notes1"`
	Notes2   string  `json:"notes2"`
}

// CreateMinuteRequest is a manually written minute
type CreateMinuteRequest struct {
	MeetingID   string        `json:"meeting_id" validate:"required,uuid"`
	MeetingDate string        `json:"meeting_date" validate:"required,isodate"`
	Title       string        `json:"title" validate:"max=255"`
	Items       []ItemRequest `json:"items" validate:"dive"`
}

// FormatRequest is the body for POST /minutes/ai and POST /minutes/format.
// MeetingID is required only when persisting.
type FormatRequest struct {
	MeetingID       string `json:"meeting_id" validate:"omitempty,uuid"`
	MeetingDate     string `json:"meeting_date" validate:"required,isodate"`
	Title           string `json:"title" validate:"max=255"`
	RawText         string `json:"raw_text" validate:"required,max=200000"`
	ModelPreference string `json:"model_preference,omitempty" validate:"omitempty,oneof=gpt-5.1 gpt-5 gpt-5-mini"`
	LocalOnly       bool   `json:"local_only,omitempty"`
}

// UpdateMinuteRequest replaces header fields and the item list. A missing
// items array leaves the items untouched.
type UpdateMinuteRequest struct {
	MeetingDate *string       `json:"meeting_date,omitempty" validate:"omitempty,isodate"`
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Items       []ItemRequest `json:"items" validate:"dive"`
}

// PatchItemRequest updates individual item fields
type PatchItemRequest struct {
	Agenda   *string `json:"agenda,omitempty"`
	Decision *string `json:"decision,omitempty"`
	Issue    *string `json:"issue,omitempty"`
	Action   *string `json:"action,omitempty"`
	Assignee *string `json:"assignee,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
	Purpose  *string `json:"purpose,omitempty"`
	Status   *string `json:"status,omitempty" validate:"omitempty,itemstatus"`
	Notes1   *string `json:"notes1,omitempty"`
	Notes2   *string `json:"notes2,omitempty"`
}
