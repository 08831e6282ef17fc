package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// DepartmentRepository defines data access for departments
type DepartmentRepository interface {
	Create(ctx context.Context, dept *entities.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	// List returns departments by display order, with teams when withTeams is set
	List(ctx context.Context, withTeams bool) ([]*entities.Department, error)
	Update(ctx context.Context, dept *entities.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamRepository defines data access for teams
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	// List returns teams by display order, optionally limited to one department
	List(ctx context.Context, departmentID *uuid.UUID) ([]*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}
