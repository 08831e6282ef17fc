package minutes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	ucerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// Service manages minutes and their items
type Service interface {
	List(ctx context.Context, in ListInput) ([]*entities.Minute, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Minute, error)
	Create(ctx context.Context, in CreateInput) (*entities.Minute, error)
	CreateFromRawText(ctx context.Context, in RawTextInput) (*entities.Minute, *formatter.FormatResult, error)
	Preview(ctx context.Context, in RawTextInput) (*formatter.FormatResult, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entities.Minute, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PatchItem(ctx context.Context, itemID uuid.UUID, in ItemPatch) (*entities.MinuteItem, error)
	Transcript(ctx context.Context, id uuid.UUID) (string, error)
}

// TranscriptStore archives raw transcripts; satisfied by *storage.MinIOClient
type TranscriptStore interface {
	PutTranscript(ctx context.Context, minuteID uuid.UUID, text string) (string, error)
	GetTranscript(ctx context.Context, key string) (string, error)
	DeleteTranscript(ctx context.Context, key string) error
}

// ListInput filters minutes by meeting and inclusive date range
type ListInput struct {
	MeetingID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

// ItemInput is one item row as submitted by a client. ID is set when the
// row already exists.
type ItemInput struct {
	ID       *uuid.UUID
	Agenda   string
	Decision string
	Issue    string
	Action   string
	Assignee string
	Deadline *string
	Purpose  string
	Status   string
	Notes1   string
	Notes2   string
}

// CreateInput is a manually written minute
type CreateInput struct {
	MeetingID   uuid.UUID
	MeetingDate time.Time
	Title       string
	Items       []ItemInput
	CreatedBy   uuid.UUID
}

// RawTextInput asks for a minute to be derived from a transcript
type RawTextInput struct {
	MeetingID       uuid.UUID
	MeetingDate     time.Time
	Title           string
	RawText         string
	ModelPreference string
	LocalOnly       bool
	CreatedBy       uuid.UUID
}

// UpdateInput replaces header fields and the full item list. Nil header
// fields are left unchanged; a nil Items slice leaves items untouched.
type UpdateInput struct {
	MeetingDate *time.Time
	Title       *string
	Items       []ItemInput
}

// ItemPatch updates individual item fields. An empty Deadline clears it.
type ItemPatch struct {
	Agenda   *string
	Decision *string
	Issue    *string
	Action   *string
	Assignee *string
	Deadline *string
	Purpose  *string
	Status   *string
	Notes1   *string
	Notes2   *string
}

type minutesService struct {
	minutes     repositories.MinuteRepository
	meetings    repositories.MeetingRepository
	formatter   formatter.Service
	transcripts TranscriptStore
	logger      *zap.Logger
}

var _ Service = (*minutesService)(nil)

// NewMinutesService creates a new minutes service. transcripts may be nil
// when object storage is disabled.
func NewMinutesService(
	minutes repositories.MinuteRepository,
	meetings repositories.MeetingRepository,
	fmtService formatter.Service,
	transcripts TranscriptStore,
	logger *zap.Logger,
) Service {
	return &minutesService{
		minutes:     minutes,
		meetings:    meetings,
		formatter:   fmtService,
		transcripts: transcripts,
		logger:      logger,
	}
}

func (s *minutesService) List(ctx context.Context, in ListInput) ([]*entities.Minute, int64, error) {
	limit, offset := meeting.Paginate(in.Page, in.Limit)
	return s.minutes.List(ctx, repositories.MinuteFilter{
		MeetingID: in.MeetingID,
		From:      in.From,
		To:        in.To,
		Limit:     limit,
		Offset:    offset,
	})
}

func (s *minutesService) Get(ctx context.Context, id uuid.UUID) (*entities.Minute, error) {
	return s.minutes.FindByID(ctx, id)
}

// Create stores a manually written minute
func (s *minutesService) Create(ctx context.Context, in CreateInput) (*entities.Minute, error) {
	if in.MeetingDate.IsZero() {
		return nil, ucerrors.ErrInvalidMeetingDate
	}
	mtg, err := s.openMeeting(ctx, in.MeetingID)
	if err != nil {
		return nil, err
	}

	date := reldate.Day(in.MeetingDate)
	minute := &entities.Minute{
		ID:          uuid.New(),
		MeetingID:   mtg.ID,
		MeetingDate: date,
		Title:       titleOrDefault(in.Title, mtg.Name, date),
		FormatMeta:  datatypes.NewJSONType(entities.FormatMeta{Source: entities.FormatSourceManual}),
		CreatedBy:   in.CreatedBy,
	}
	minute.Items = buildItems(minute.ID, in.Items, date)

	if err := s.minutes.Create(ctx, minute); err != nil {
		return nil, err
	}
	return minute, nil
}

// CreateFromRawText formats the transcript, persists the minute with
// row_order following item order, then archives the raw text
func (s *minutesService) CreateFromRawText(ctx context.Context, in RawTextInput) (*entities.Minute, *formatter.FormatResult, error) {
	if strings.TrimSpace(in.RawText) == "" {
		return nil, nil, ucerrors.ErrEmptyRawText
	}
	if in.MeetingDate.IsZero() {
		return nil, nil, ucerrors.ErrInvalidMeetingDate
	}
	mtg, err := s.openMeeting(ctx, in.MeetingID)
	if err != nil {
		return nil, nil, err
	}

	date := reldate.Day(in.MeetingDate)
	res, err := s.formatter.FormatRawText(ctx, formatter.FormatInput{
		RawText:         in.RawText,
		MeetingDate:     date,
		ModelPreference: in.ModelPreference,
		LocalOnly:       in.LocalOnly,
	})
	if err != nil {
		return nil, nil, err
	}

	raw := in.RawText
	minute := &entities.Minute{
		ID:          uuid.New(),
		MeetingID:   mtg.ID,
		MeetingDate: date,
		Title:       titleOrDefault(in.Title, mtg.Name, date),
		RawText:     &raw,
		FormatMeta:  datatypes.NewJSONType(res.Meta()),
		CreatedBy:   in.CreatedBy,
	}
	minute.Items = make([]entities.MinuteItem, 0, len(res.Items))
	for i, item := range res.Items {
		minute.Items = append(minute.Items, entities.NewMinuteItem(minute.ID, i+1, item))
	}

	if err := s.minutes.Create(ctx, minute); err != nil {
		return nil, nil, err
	}

	s.archive(ctx, minute)

	if s.logger != nil {
		s.logger.Info("minute created from raw text",
			zap.String("minute_id", minute.ID.String()),
			zap.String("meeting_id", mtg.ID.String()),
			zap.String("source", string(res.Source)),
			zap.Bool("fallback", res.Fallback),
			zap.Int("items", len(minute.Items)),
		)
	}
	return minute, res, nil
}

// Preview runs the formatter without persisting anything
func (s *minutesService) Preview(ctx context.Context, in RawTextInput) (*formatter.FormatResult, error) {
	if strings.TrimSpace(in.RawText) == "" {
		return nil, ucerrors.ErrEmptyRawText
	}
	if in.MeetingDate.IsZero() {
		return nil, ucerrors.ErrInvalidMeetingDate
	}
	return s.formatter.FormatRawText(ctx, formatter.FormatInput{
		RawText:         in.RawText,
		MeetingDate:     reldate.Day(in.MeetingDate),
		ModelPreference: in.ModelPreference,
		LocalOnly:       in.LocalOnly,
	})
}

func (s *minutesService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entities.Minute, error) {
	minute, err := s.minutes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.MeetingDate != nil {
		if in.MeetingDate.IsZero() {
			return nil, ucerrors.ErrInvalidMeetingDate
		}
		minute.MeetingDate = reldate.Day(*in.MeetingDate)
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ucerrors.ErrInvalidInput)
		}
		minute.Title = title
	}
	if in.Items != nil {
		known := make(map[uuid.UUID]bool, len(minute.Items))
		for _, it := range minute.Items {
			known[it.ID] = true
		}
		for _, it := range in.Items {
			if it.ID != nil && !known[*it.ID] {
				return nil, ucerrors.ErrItemNotInMinute
			}
		}
		minute.Items = buildItems(minute.ID, in.Items, minute.MeetingDate)
	}

	if err := s.minutes.Update(ctx, minute); err != nil {
		return nil, err
	}
	return s.minutes.FindByID(ctx, id)
}

// Delete removes the minute and, best effort, its archived transcript
func (s *minutesService) Delete(ctx context.Context, id uuid.UUID) error {
	minute, err := s.minutes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.minutes.Delete(ctx, id); err != nil {
		return err
	}

	if s.transcripts != nil && minute.TranscriptKey != nil {
		if err := s.transcripts.DeleteTranscript(ctx, *minute.TranscriptKey); err != nil && s.logger != nil {
			s.logger.Warn("failed to delete archived transcript",
				zap.String("minute_id", id.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *minutesService) PatchItem(ctx context.Context, itemID uuid.UUID, in ItemPatch) (*entities.MinuteItem, error) {
	item, err := s.minutes.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	setString(&item.Agenda, in.Agenda)
	setString(&item.Decision, in.Decision)
	setString(&item.Issue, in.Issue)
	setString(&item.Action, in.Action)
	setString(&item.Assignee, in.Assignee)
	setString(&item.Purpose, in.Purpose)
	setString(&item.Notes1, in.Notes1)
	setString(&item.Notes2, in.Notes2)

	if in.Status != nil {
		status, ok := entities.ParseItemStatus(*in.Status)
		if !ok {
			return nil, entities.ErrInvalidItemStatus
		}
		item.Status = status
	}
	if in.Deadline != nil {
		deadline, err := parseDeadline(*in.Deadline)
		if err != nil {
			return nil, err
		}
		item.Deadline = deadline
	}

	if err := s.minutes.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Transcript returns the archived raw text, falling back to the copy kept
// on the minute row
func (s *minutesService) Transcript(ctx context.Context, id uuid.UUID) (string, error) {
	minute, err := s.minutes.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if s.transcripts != nil && minute.TranscriptKey != nil {
		text, err := s.transcripts.GetTranscript(ctx, *minute.TranscriptKey)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			return "", fmt.Errorf("%w: %w", ucerrors.ErrTranscriptStorage, err)
		}
	}
	if minute.RawText != nil && *minute.RawText != "" {
		return *minute.RawText, nil
	}
	return "", ucerrors.ErrTranscriptMissing
}

func (s *minutesService) openMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	mtg, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mtg.IsArchived {
		return nil, ucerrors.ErrMeetingArchived
	}
	return mtg, nil
}

// archive uploads the raw text; storage failures are logged, not returned
func (s *minutesService) archive(ctx context.Context, minute *entities.Minute) {
	if s.transcripts == nil || minute.RawText == nil {
		return
	}
	key, err := s.transcripts.PutTranscript(ctx, minute.ID, *minute.RawText)
	if err == nil {
		err = s.minutes.SetTranscriptKey(ctx, minute.ID, key)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to archive transcript", zap.String("minute_id", minute.ID.String()), zap.Error(err))
		}
		return
	}
	minute.TranscriptKey = &key
}

func buildItems(minuteID uuid.UUID, inputs []ItemInput, base time.Time) []entities.MinuteItem {
	items := make([]entities.MinuteItem, 0, len(inputs))
	for i, in := range inputs {
		extracted := entities.ExtractedItem{
			Agenda:   in.Agenda,
			Decision: in.Decision,
			Issue:    in.Issue,
			Action:   in.Action,
			Assignee: in.Assignee,
			Deadline: in.Deadline,
			Purpose:  in.Purpose,
			Status:   entities.ItemStatus(in.Status),
			Notes1:   in.Notes1,
			Notes2:   in.Notes2,
		}.Normalize(base)

		row := entities.NewMinuteItem(minuteID, i+1, extracted)
		if in.ID != nil {
			row.ID = *in.ID
		}
		items = append(items, row)
	}
	return items
}

func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(reldate.Layout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: deadline must be YYYY-MM-DD", ucerrors.ErrInvalidInput)
	}
	return &t, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func titleOrDefault(title, meetingName string, date time.Time) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return fmt.Sprintf("%s 議事録 %s", meetingName, date.Format(reldate.Layout))
}
