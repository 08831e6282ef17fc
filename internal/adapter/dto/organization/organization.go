package organization

import "time"

// DepartmentRequest is the body for creating or updating a department
type DepartmentRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

// TeamRequest is the body for creating or updating a team
type TeamRequest struct {
	DepartmentID string  `json:"department_id" validate:"required,uuid"`
	Name         string  `json:"name" validate:"required,max=255"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

// DepartmentResponse is a department, with its teams on the board view
type DepartmentResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	DisplayOrder int             `json:"display_order"`
	Teams        []*TeamResponse `json:"teams,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TeamResponse is a team
type TeamResponse struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
