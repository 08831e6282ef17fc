package entities

import (
	"time"

	"github.com/google/uuid"
)

// Department is the top level of the organization board
type Department struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" gorm:"default:0;not null"`
	Teams        []Team    `json:"teams,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}

// Team belongs to a department and owns meetings
type Team struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DepartmentID uuid.UUID `json:"department_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_department_name"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_team_department_name"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" gorm:"default:0;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}
