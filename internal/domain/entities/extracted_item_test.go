package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestExtractedItem_Normalize(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	item := ExtractedItem{
		Agenda:   "  Wise導入 ",
		Status:   "progress",
		Deadline: strPtr("来週"),
	}.Normalize(base)

	assert.Equal(t, "Wise導入", item.Agenda)
	assert.Equal(t, DefaultAction, item.Action)
	assert.Equal(t, DefaultAssignee, item.Assignee)
	assert.Equal(t, DefaultPurpose, item.Purpose)
	assert.Equal(t, StatusInProgress, item.Status)
	require.NotNil(t, item.Deadline)
	assert.Equal(t, "2026-01-22", *item.Deadline)
}

func TestExtractedItem_NormalizeDropsUnresolvableDeadline(t *testing.T) {
	item := ExtractedItem{Deadline: strPtr("そのうち"), Status: "unknown"}.Normalize(time.Now())
	assert.Nil(t, item.Deadline)
	assert.Equal(t, StatusPending, item.Status)
}

func TestParseItemStatus(t *testing.T) {
	tests := map[string]ItemStatus{
		"not_started": StatusPending,
		"DONE":        StatusCompleted,
		"完了":          StatusCompleted,
		"overdue":     StatusOverdue,
		"canceled":    StatusCancelled,
	}
	for in, want := range tests {
		got, ok := ParseItemStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseItemStatus("someday")
	assert.False(t, ok)
}

func TestNewMinuteItem(t *testing.T) {
	minuteID := uuid.New()
	row := NewMinuteItem(minuteID, 3, ExtractedItem{
		Agenda:   "予算",
		Action:   "見積もりを確認する。",
		Deadline: strPtr("2026-01-31"),
	})

	assert.Equal(t, minuteID, row.MinuteID)
	assert.Equal(t, 3, row.RowOrder)
	assert.Equal(t, StatusPending, row.Status)
	require.NotNil(t, row.Deadline)
	assert.Equal(t, "2026-01-31", row.Deadline.Format("2006-01-02"))
}
