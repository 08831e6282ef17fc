package heuristic

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Run executes segmentation, clustering and extraction over a raw
// transcript. It always returns between one and Limits.MaxItems items and
// reads no clock other than base.
func (r *Rules) Run(text string, base time.Time) []entities.ExtractedItem {
	windows := r.Cluster(r.Segment(Normalize(text)))

	var (
		items = make([]entities.ExtractedItem, 0, len(windows))
		seen  = make(map[string]bool, len(windows))
		limit = r.vocab.Limits
	)
	for _, w := range windows {
		item := r.Extract(w, base)
		key := prefix(item.Agenda, limit.DedupePrefixRunes)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, item)
		if len(items) == limit.MaxItems {
			break
		}
	}

	if len(items) == 0 {
		items = append(items, r.Placeholder(base))
	}
	return items
}

// Placeholder is the single item emitted for transcripts with no content
func (r *Rules) Placeholder(base time.Time) entities.ExtractedItem {
	return entities.ExtractedItem{
		Agenda:   r.vocab.Placeholder.Agenda,
		Action:   r.vocab.Placeholder.Action,
		Deadline: r.defaultDeadline(base),
		Status:   entities.StatusPending,
	}.Normalize(base)
}
