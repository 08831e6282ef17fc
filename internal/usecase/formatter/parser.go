package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// field aliases accepted from the model, first present wins
var (
	actionKeys  = []string{"action", "action_item", "actionItem"}
	purposeKeys = []string{"purpose", "reason"}
)

// ParseItems turns a completion body into normalized items. The body must
// be a JSON array or an object whose first array-valued property holds
// the items; anything else is a SchemaError.
func ParseItems(content string, base time.Time) ([]entities.ExtractedItem, error) {
	raw, err := itemArray(extractJSON(content))
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &SchemaError{Reason: "items are not objects", Err: err}
	}
	if len(records) == 0 {
		return nil, &SchemaError{Reason: "empty item array"}
	}

	items := make([]entities.ExtractedItem, 0, len(records))
	for _, rec := range records {
		items = append(items, itemFromRecord(rec).Normalize(base))
	}
	return items, nil
}

// extractJSON strips markdown code fences and surrounding prose
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	s = strings.TrimSpace(s)

	if s == "" || s[0] == '{' || s[0] == '[' {
		return s
	}

	// prose around the payload: keep the outermost object or array
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return s
	}
	return s[start : end+1]
}

// itemArray returns the raw array, unwrapping a single-level object
func itemArray(s string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 {
		return nil, &SchemaError{Reason: "empty response"}
	}
	if !json.Valid(trimmed) {
		return nil, &SchemaError{Reason: "response is not valid JSON"}
	}

	switch trimmed[0] {
	case '[':
		return trimmed, nil
	case '{':
		return firstArrayProperty(trimmed)
	default:
		return nil, &SchemaError{Reason: "response is neither an array nor an object"}
	}
}

// firstArrayProperty walks the object in document order so the choice is
// stable regardless of map iteration
func firstArrayProperty(obj []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if _, err := dec.Token(); err != nil {
		return nil, &SchemaError{Reason: "malformed object", Err: err}
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, &SchemaError{Reason: "malformed object key", Err: err}
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &SchemaError{Reason: "malformed object value", Err: err}
		}
		if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
			return v, nil
		}
	}
	return nil, &SchemaError{Reason: "object has no array-valued property"}
}

func itemFromRecord(rec map[string]any) entities.ExtractedItem {
	item := entities.ExtractedItem{
		Agenda:   stringField(rec, "agenda"),
		Decision: stringField(rec, "decision"),
		Issue:    stringField(rec, "issue"),
		Action:   stringField(rec, actionKeys...),
		Assignee: stringField(rec, "assignee"),
		Purpose:  stringField(rec, purposeKeys...),
		Status:   entities.ItemStatus(stringField(rec, "status")),
		Notes1:   stringField(rec, "notes1"),
		Notes2:   stringField(rec, "notes2"),
	}
	if d := stringField(rec, "deadline"); d != "" {
		item.Deadline = &d
	}
	return item
}

// stringField reads the first present key, rendering numbers and bools as
// text and null as empty
func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64, bool:
			return fmt.Sprint(t)
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				if p != nil {
					parts = append(parts, fmt.Sprint(p))
				}
			}
			return strings.Join(parts, "、")
		}
	}
	return ""
}
