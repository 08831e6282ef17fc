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

// MinuteRepository implements repositories.MinuteRepository using GORM
type MinuteRepository struct {
	db *gorm.DB
}

var _ repositories.MinuteRepository = (*MinuteRepository)(nil)

// NewMinuteRepository creates a new minute repository
func NewMinuteRepository(db *gorm.DB) *MinuteRepository {
	return &MinuteRepository{db: db}
}

// Create inserts the minute and its items in one transaction
func (r *MinuteRepository) Create(ctx context.Context, minute *entities.Minute) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(minute).Error; err != nil {
			return wrapWriteError("create minute", err)
		}
		for i := range minute.Items {
			minute.Items[i].MinuteID = minute.ID
		}
		if len(minute.Items) > 0 {
			if err := tx.Create(&minute.Items).Error; err != nil {
				return wrapWriteError("create minute items", err)
			}
		}
		return nil
	})
	return err
}

// FindByID loads a minute with items ordered by row_order
func (r *MinuteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Minute, error) {
	var minute entities.Minute
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_order ASC")
		}).
		Where("id = ?", id).
		First(&minute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMinuteNotFound
		}
		return nil, fmt.Errorf("failed to find minute: %w", err)
	}
	return &minute, nil
}

// List returns minutes without items, newest meeting date first
func (r *MinuteRepository) List(ctx context.Context, filter repositories.MinuteFilter) ([]*entities.Minute, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Minute{})
	if filter.MeetingID != nil {
		q = q.Where("meeting_id = ?", *filter.MeetingID)
	}
	if filter.From != nil {
		q = q.Where("meeting_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("meeting_date <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count minutes: %w", err)
	}

	var minutes []*entities.Minute
	err := paginate(q.Omit("raw_text").Order("meeting_date DESC, created_at DESC"), filter.Limit, filter.Offset).
		Find(&minutes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list minutes: %w", err)
	}
	return minutes, total, nil
}

// Update saves header fields and reconciles the item set in one transaction
func (r *MinuteRepository) Update(ctx context.Context, minute *entities.Minute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Minute{}).
			Where("id = ?", minute.ID).
			Select("meeting_date", "title", "updated_at").
			Updates(minute)
		if result.Error != nil {
			return wrapWriteError("update minute", result.Error)
		}
		if result.RowsAffected == 0 {
			return entities.ErrMinuteNotFound
		}

		var existing []uuid.UUID
		if err := tx.Model(&entities.MinuteItem{}).
			Where("minute_id = ?", minute.ID).
			Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("failed to load minute items: %w", err)
		}
		known := make(map[uuid.UUID]bool, len(existing))
		for _, id := range existing {
			known[id] = true
		}

		keep := make([]uuid.UUID, 0, len(minute.Items))
		for i := range minute.Items {
			item := &minute.Items[i]
			item.MinuteID = minute.ID

			if item.ID != uuid.Nil && known[item.ID] {
				if err := tx.Model(&entities.MinuteItem{}).
					Where("id = ?", item.ID).
					Select(itemColumns).
					Updates(item).Error; err != nil {
					return fmt.Errorf("failed to update minute item: %w", err)
				}
				keep = append(keep, item.ID)
				continue
			}

			item.ID = uuid.New()
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create minute item: %w", err)
			}
			keep = append(keep, item.ID)
		}

		del := tx.Where("minute_id = ?", minute.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&entities.MinuteItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete removed minute items: %w", err)
		}
		return nil
	})
}

// itemColumns are the user-editable item columns
var itemColumns = []string{
	"row_order", "agenda", "decision", "issue", "action_item", "assignee",
	"deadline", "purpose", "status", "notes1", "notes2", "updated_at",
}

func (r *MinuteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &entities.Minute{}, id, entities.ErrMinuteNotFound)
}

func (r *MinuteRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*entities.MinuteItem, error) {
	var item entities.MinuteItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMinuteItemNotFound
		}
		return nil, fmt.Errorf("failed to find minute item: %w", err)
	}
	return &item, nil
}

func (r *MinuteRepository) UpdateItem(ctx context.Context, item *entities.MinuteItem) error {
	result := r.db.WithContext(ctx).
		Model(&entities.MinuteItem{}).
		Where("id = ?", item.ID).
		Select(itemColumns).
		Updates(item)
	if result.Error != nil {
		return fmt.Errorf("failed to update minute item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMinuteItemNotFound
	}
	return nil
}

func (r *MinuteRepository) SetTranscriptKey(ctx context.Context, id uuid.UUID, key string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Minute{}).
		Where("id = ?", id).
		Update("transcript_key", key)
	if result.Error != nil {
		return fmt.Errorf("failed to set transcript key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMinuteNotFound
	}
	return nil
}
