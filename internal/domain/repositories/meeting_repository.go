package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingFilter narrows a meeting listing
type MeetingFilter struct {
	TeamID          *uuid.UUID
	IncludeArchived bool
	Limit           int
	Offset          int
}

// MeetingRepository defines data access for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]*entities.Meeting, int64, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MinuteFilter narrows a minutes listing. From and To are inclusive
// meeting dates.
type MinuteFilter struct {
	MeetingID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MinuteRepository defines data access for minutes and their items
type MinuteRepository interface {
	// Create inserts the minute and its items in one transaction
	Create(ctx context.Context, minute *entities.Minute) error

	// FindByID loads a minute with items ordered by row_order
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Minute, error)

	// List returns minutes without items, newest meeting date first
	List(ctx context.Context, filter MinuteFilter) ([]*entities.Minute, int64, error)

	// Update saves header fields and reconciles items: rows with a known ID
	// are updated, rows without one are inserted, missing rows are deleted
	Update(ctx context.Context, minute *entities.Minute) error

	Delete(ctx context.Context, id uuid.UUID) error

	FindItem(ctx context.Context, itemID uuid.UUID) (*entities.MinuteItem, error)
	UpdateItem(ctx context.Context, item *entities.MinuteItem) error

	// SetTranscriptKey records where the raw text was archived
	SetTranscriptKey(ctx context.Context, id uuid.UUID, key string) error
}
