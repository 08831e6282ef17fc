package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FormatSource records which path produced a minute's items
type FormatSource string

const (
	FormatSourceManual FormatSource = "manual"
	FormatSourceRemote FormatSource = "remote"
	FormatSourceLocal  FormatSource = "local"
)

// FormatMeta is stored as JSONB alongside AI-formatted minutes
type FormatMeta struct {
	Source         FormatSource `json:"source"`
	Model          string       `json:"model,omitempty"`
	Fallback       bool         `json:"fallback"`
	FallbackReason string       `json:"fallback_reason,omitempty"`
	Cached         bool         `json:"cached,omitempty"`
}

// Minute is the record of one meeting occurrence
type Minute struct {
	ID            uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID                      `json:"meeting_id" gorm:"type:uuid;not null;index"`
	MeetingDate   time.Time                      `json:"meeting_date" gorm:"type:date;not null;index"`
	Title         string                         `json:"title" gorm:"type:varchar(255);not null"`
	RawText       *string                        `json:"raw_text,omitempty" gorm:"type:text"`
	TranscriptKey *string                        `json:"transcript_key,omitempty" gorm:"type:varchar(500)"`
	FormatMeta    datatypes.JSONType[FormatMeta] `json:"format_meta" gorm:"type:jsonb"`
	CreatedBy     uuid.UUID                      `json:"created_by" gorm:"type:uuid;not null"`
	Items         []MinuteItem                   `json:"items,omitempty" gorm:"foreignKey:MinuteID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Minute
func (Minute) TableName() string {
	return "minutes"
}

// MinuteItem is one persisted row of a minute's action-item table
type MinuteItem struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MinuteID  uuid.UUID  `json:"minute_id" gorm:"type:uuid;not null;index"`
	RowOrder  int        `json:"row_order" gorm:"not null"`
	Agenda    string     `json:"agenda" gorm:"type:text"`
	Decision  string     `json:"decision" gorm:"type:text"`
	Issue     string     `json:"issue" gorm:"type:text"`
	Action    string     `json:"action" gorm:"column:action_item;type:text"`
	Assignee  string     `json:"assignee" gorm:"type:varchar(255)"`
	Deadline  *time.Time `json:"deadline,omitempty" gorm:"type:date"`
	Purpose   string     `json:"purpose" gorm:"type:text"`
	Status    ItemStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
	Notes1    string     `json:"notes1" gorm:"type:text"`
	Notes2    string     `json:"notes2" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MinuteItem
func (MinuteItem) TableName() string {
	return "minute_items"
}

// NewMinuteItem converts an extracted item into a persistable row
func NewMinuteItem(minuteID uuid.UUID, rowOrder int, item ExtractedItem) MinuteItem {
	row := MinuteItem{
		ID:       uuid.New(),
		MinuteID: minuteID,
		RowOrder: rowOrder,
		Agenda:   item.Agenda,
		Decision: item.Decision,
		Issue:    item.Issue,
		Action:   item.Action,
		Assignee: item.Assignee,
		Purpose:  item.Purpose,
		Status:   item.Status,
		Notes1:   item.Notes1,
		Notes2:   item.Notes2,
	}
	if row.Status == "" {
		row.Status = StatusPending
	}
	if item.Deadline != nil {
		if t, err := time.Parse("2006-01-02", *item.Deadline); err == nil {
			row.Deadline = &t
		}
	}
	return row
}
