package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Service manages meetings
type Service interface {
	List(ctx context.Context, in ListInput) ([]*entities.Meeting, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Create(ctx context.Context, in CreateInput) (*entities.Meeting, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entities.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Archive(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Restore(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
}

// ListInput filters meetings; Page starts at 1
type ListInput struct {
	TeamID          *uuid.UUID
	IncludeArchived bool
	Page            int
	Limit           int
}

// CreateInput holds data for a new meeting
type CreateInput struct {
	TeamID      uuid.UUID
	Name        string
	Description *string
	CreatedBy   uuid.UUID
}

// UpdateInput holds the editable meeting fields; nil leaves a field unchanged
type UpdateInput struct {
	TeamID      *uuid.UUID
	Name        *string
	Description *string
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type meetingService struct {
	meetings repositories.MeetingRepository
	teams    repositories.TeamRepository
	logger   *zap.Logger
}

var _ Service = (*meetingService)(nil)

// NewMeetingService creates a new meeting service
func NewMeetingService(meetings repositories.MeetingRepository, teams repositories.TeamRepository, logger *zap.Logger) Service {
	return &meetingService{meetings: meetings, teams: teams, logger: logger}
}

// Paginate clamps page and limit and returns limit and offset
func Paginate(page, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func (s *meetingService) List(ctx context.Context, in ListInput) ([]*entities.Meeting, int64, error) {
	limit, offset := Paginate(in.Page, in.Limit)
	return s.meetings.List(ctx, repositories.MeetingFilter{
		TeamID:          in.TeamID,
		IncludeArchived: in.IncludeArchived,
		Limit:           limit,
		Offset:          offset,
	})
}

func (s *meetingService) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return s.meetings.FindByID(ctx, id)
}

func (s *meetingService) Create(ctx context.Context, in CreateInput) (*entities.Meeting, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: meeting name is required", ucerrors.ErrInvalidInput)
	}
	if _, err := s.teams.FindByID(ctx, in.TeamID); err != nil {
		return nil, err
	}

	meeting := &entities.Meeting{
		ID:          uuid.New(),
		TeamID:      in.TeamID,
		Name:        name,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("meeting created",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("team_id", meeting.TeamID.String()),
		)
	}
	return meeting, nil
}

func (s *meetingService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: meeting name is required", ucerrors.ErrInvalidInput)
		}
		meeting.Name = name
	}
	if in.Description != nil {
		meeting.Description = in.Description
	}
	if in.TeamID != nil && *in.TeamID != meeting.TeamID {
		if _, err := s.teams.FindByID(ctx, *in.TeamID); err != nil {
			return nil, err
		}
		meeting.TeamID = *in.TeamID
	}

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.meetings.Delete(ctx, id)
}

// Archive is idempotent
func (s *meetingService) Archive(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting.IsArchived {
		return meeting, nil
	}
	meeting.Archive()
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) Restore(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !meeting.IsArchived {
		return meeting, nil
	}
	meeting.Restore()
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}
