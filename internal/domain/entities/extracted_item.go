package entities

import (
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// ItemStatus is the progress state of a minute item
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusOverdue    ItemStatus = "overdue"
	StatusCancelled  ItemStatus = "cancelled"
)

// Defaults shared by the remote and heuristic formatting paths
const (
	DefaultAgenda   = "議題未設定"
	DefaultAction   = "内容を確認する"
	DefaultAssignee = "未定"
	DefaultPurpose  = "業務効率化・品質向上のため"
)

var statusAliases = map[string]ItemStatus{
	"pending":     StatusPending,
	"not_started": StatusPending,
	"todo":        StatusPending,
	"未着手":         StatusPending,
	"in_progress": StatusInProgress,
	"progress":    StatusInProgress,
	"in-progress": StatusInProgress,
	"進行中":         StatusInProgress,
	"対応中":         StatusInProgress,
	"completed":   StatusCompleted,
	"done":        StatusCompleted,
	"完了":          StatusCompleted,
	"overdue":     StatusOverdue,
	"期限切れ":        StatusOverdue,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
	"中止":          StatusCancelled,
}

// ParseItemStatus maps a status or one of its aliases onto ItemStatus
func ParseItemStatus(s string) (ItemStatus, bool) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// IsValid checks if the status is one of the canonical values
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// ExtractedItem is one structured action item produced by the formatter
type ExtractedItem struct {
	Agenda   string     `json:"agenda"`
	Decision string     `json:"decision,omitempty"`
	Issue    string     `json:"issue,omitempty"`
	Action   string     `json:"action"`
	Assignee string     `json:"assignee"`
	Deadline *string    `json:"deadline"`
	Purpose  string     `json:"purpose"`
	Status   ItemStatus `json:"status"`
	Notes1   string     `json:"notes1"`
	Notes2   string     `json:"notes2"`
}

// Normalize trims every field, fills defaults and resolves a relative
// deadline against base. The deadline ends up nil or YYYY-MM-DD.
func (it ExtractedItem) Normalize(base time.Time) ExtractedItem {
	it.Agenda = orDefault(it.Agenda, DefaultAgenda)
	it.Decision = strings.TrimSpace(it.Decision)
	it.Issue = strings.TrimSpace(it.Issue)
	it.Action = orDefault(it.Action, DefaultAction)
	it.Assignee = orDefault(it.Assignee, DefaultAssignee)
	it.Purpose = orDefault(it.Purpose, DefaultPurpose)
	it.Notes1 = strings.TrimSpace(it.Notes1)
	it.Notes2 = strings.TrimSpace(it.Notes2)

	if status, ok := ParseItemStatus(string(it.Status)); ok {
		it.Status = status
	} else {
		it.Status = StatusPending
	}

	if it.Deadline != nil {
		if resolved, ok := reldate.Resolve(*it.Deadline, base); ok {
			it.Deadline = &resolved
		} else {
			it.Deadline = nil
		}
	}
	return it
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
