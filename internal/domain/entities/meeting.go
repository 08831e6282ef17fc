package entities

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is a recurring meeting owned by a team; minutes hang off it
type Meeting struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID      uuid.UUID  `json:"team_id" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	IsArchived  bool       `json:"is_archived" gorm:"default:false;not null;index"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty" gorm:"type:timestamp"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// Archive hides the meeting from default listings
func (m *Meeting) Archive() {
	now := time.Now()
	m.IsArchived = true
	m.ArchivedAt = &now
}

// Restore makes an archived meeting visible again
func (m *Meeting) Restore() {
	m.IsArchived = false
	m.ArchivedAt = nil
}
