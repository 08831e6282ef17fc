package minutes

import "time"

// ItemResponse is one persisted item row
type ItemResponse struct {
	ID       string  `json:"id"`
	RowOrder int     `json:"row_order"`
	Agenda   string  `json:"agenda"`
	Decision string  `json:"decision"`
	Issue    string  `json:"issue"`
	Action   string  `json:"action"`
	Assignee string  `json:"assignee"`
	Deadline *string `json:"deadline"`
	Purpose  string  `json:"purpose"`
	Status   string  `json:"status"`
	Notes1   string  `json:"notes1"`
	Notes2   string  `json:"notes2"`
}

// FormatMetaResponse reports how a minute's items were produced
type FormatMetaResponse struct {
	Source         string `json:"source"`
	Model          string `json:"model,omitempty"`
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	Cached         bool   `json:"cached,omitempty"`
}

// MinuteResponse is a minute with its items
type MinuteResponse struct {
	ID            string              `json:"id"`
	MeetingID     string              `json:"meeting_id"`
	MeetingDate   string              `json:"meeting_date"`
	Title         string              `json:"title"`
	HasTranscript bool                `json:"has_transcript"`
	FormatMeta    *FormatMetaResponse `json:"format_meta,omitempty"`
	CreatedBy     string              `json:"created_by"`
	Items         []ItemResponse      `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ExtractedItemResponse is one formatter output row; field names follow
// the formatter contract
type ExtractedItemResponse struct {
	Agenda   string  `json:"agenda"`
	Decision string  `json:"decision"`
	Issue    string  `json:"issue"`
	Action   string  `json:"action"`
	Assignee string  `json:"assignee"`
	Deadline *string `json:"deadline"`
	Purpose  string  `json:"purpose"`
	Status   string  `json:"status"`
	Notes1   string  `json:"notes1"`
	Notes2   string  `json:"notes2"`
}

// FormatResponse is the preview result of POST /minutes/format
type FormatResponse struct {
	Items []ExtractedItemResponse `json:"items"`
	Meta  FormatMetaResponse      `json:"meta"`
}

// CreateFromTextResponse is the result of POST /minutes/ai
type CreateFromTextResponse struct {
	Minute *MinuteResponse    `json:"minute"`
	Meta   FormatMetaResponse `json:"meta"`
}

// TranscriptResponse is an archived raw transcript
type TranscriptResponse struct {
	MinuteID string `json:"minute_id"`
	RawText  string `json:"raw_text"`
}
