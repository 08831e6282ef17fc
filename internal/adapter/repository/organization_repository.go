package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// DepartmentRepository implements repositories.DepartmentRepository using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

var _ repositories.DepartmentRepository = (*DepartmentRepository)(nil)

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *entities.Department) error {
	if err := r.db.WithContext(ctx).Omit("Teams").Create(dept).Error; err != nil {
		return wrapWriteError("create department", err)
	}
	return nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	var dept entities.Department
	err := r.db.WithContext(ctx).
		Preload("Teams", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return &dept, nil
}

func (r *DepartmentRepository) List(ctx context.Context, withTeams bool) ([]*entities.Department, error) {
	var depts []*entities.Department
	q := r.db.WithContext(ctx).Order("display_order ASC, name ASC")
	if withTeams {
		q = q.Preload("Teams", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		})
	}
	if err := q.Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, dept *entities.Department) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Department{}).
		Where("id = ?", dept.ID).
		Select("name", "description", "display_order", "updated_at").
		Updates(dept)
	if result.Error != nil {
		return wrapWriteError("update department", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrDepartmentNotFound
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &entities.Department{}, id, entities.ErrDepartmentNotFound)
}

// TeamRepository implements repositories.TeamRepository using GORM
type TeamRepository struct {
	db *gorm.DB
}

var _ repositories.TeamRepository = (*TeamRepository)(nil)

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return wrapWriteError("create team", err)
	}
	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var team entities.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) List(ctx context.Context, departmentID *uuid.UUID) ([]*entities.Team, error) {
	var teams []*entities.Team
	q := r.db.WithContext(ctx).Order("display_order ASC, name ASC")
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	if err := q.Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Team{}).
		Where("id = ?", team.ID).
		Select("department_id", "name", "description", "display_order", "updated_at").
		Updates(team)
	if result.Error != nil {
		return wrapWriteError("update team", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &entities.Team{}, id, entities.ErrTeamNotFound)
}
