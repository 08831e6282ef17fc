package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Service manages departments and teams
type Service interface {
	Board(ctx context.Context) ([]*entities.Department, error)

	ListDepartments(ctx context.Context) ([]*entities.Department, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, in DepartmentInput) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, in DepartmentInput) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error

	ListTeams(ctx context.Context, departmentID *uuid.UUID) ([]*entities.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	CreateTeam(ctx context.Context, in TeamInput) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, in TeamInput) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// DepartmentInput is the writable part of a department
type DepartmentInput struct {
	Name         string
	Description  *string
	DisplayOrder int
}

// TeamInput is the writable part of a team
type TeamInput struct {
	DepartmentID uuid.UUID
	Name         string
	Description  *string
	DisplayOrder int
}

type organizationService struct {
	departments repositories.DepartmentRepository
	teams       repositories.TeamRepository
	logger      *zap.Logger
}

var _ Service = (*organizationService)(nil)

// NewOrganizationService creates a new organization service
func NewOrganizationService(departments repositories.DepartmentRepository, teams repositories.TeamRepository, logger *zap.Logger) Service {
	return &organizationService{departments: departments, teams: teams, logger: logger}
}

// Board returns every department with its teams, in display order
func (s *organizationService) Board(ctx context.Context) ([]*entities.Department, error) {
	return s.departments.List(ctx, true)
}

func (s *organizationService) ListDepartments(ctx context.Context) ([]*entities.Department, error) {
	return s.departments.List(ctx, false)
}

func (s *organizationService) GetDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	return s.departments.FindByID(ctx, id)
}

func (s *organizationService) CreateDepartment(ctx context.Context, in DepartmentInput) (*entities.Department, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: department name is required", ucerrors.ErrInvalidInput)
	}

	dept := &entities.Department{
		ID:           uuid.New(),
		Name:         name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, duplicate(err)
	}

	if s.logger != nil {
		s.logger.Info("department created", zap.String("department_id", dept.ID.String()), zap.String("name", name))
	}
	return dept, nil
}

func (s *organizationService) UpdateDepartment(ctx context.Context, id uuid.UUID, in DepartmentInput) (*entities.Department, error) {
	dept, err := s.departments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: department name is required", ucerrors.ErrInvalidInput)
	}

	dept.Name = name
	dept.Description = in.Description
	dept.DisplayOrder = in.DisplayOrder
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, duplicate(err)
	}
	return dept, nil
}

// DeleteDepartment refuses while teams remain
func (s *organizationService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	teams, err := s.teams.List(ctx, &id)
	if err != nil {
		return err
	}
	if len(teams) > 0 {
		return ucerrors.ErrDepartmentNotEmpty
	}
	return s.departments.Delete(ctx, id)
}

func (s *organizationService) ListTeams(ctx context.Context, departmentID *uuid.UUID) ([]*entities.Team, error) {
	return s.teams.List(ctx, departmentID)
}

func (s *organizationService) GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	return s.teams.FindByID(ctx, id)
}

func (s *organizationService) CreateTeam(ctx context.Context, in TeamInput) (*entities.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ucerrors.ErrInvalidInput)
	}
	if _, err := s.departments.FindByID(ctx, in.DepartmentID); err != nil {
		return nil, err
	}

	team := &entities.Team{
		ID:           uuid.New(),
		DepartmentID: in.DepartmentID,
		Name:         name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, duplicate(err)
	}
	return team, nil
}

func (s *organizationService) UpdateTeam(ctx context.Context, id uuid.UUID, in TeamInput) (*entities.Team, error) {
	team, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ucerrors.ErrInvalidInput)
	}
	if in.DepartmentID != uuid.Nil && in.DepartmentID != team.DepartmentID {
		if _, err := s.departments.FindByID(ctx, in.DepartmentID); err != nil {
			return nil, err
		}
		team.DepartmentID = in.DepartmentID
	}

	team.Name = name
	team.Description = in.Description
	team.DisplayOrder = in.DisplayOrder
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, duplicate(err)
	}
	return team, nil
}

func (s *organizationService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return s.teams.Delete(ctx, id)
}

func duplicate(err error) error {
	if errors.Is(err, entities.ErrDuplicate) {
		return ucerrors.ErrAlreadyExists
	}
	return err
}
