package heuristic

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// Limits bounds the size of windows and extracted fields
type Limits struct {
	MaxItems               int `yaml:"max_items"`
	MaxWindowSentences     int `yaml:"max_window_sentences"`
	GeneralWindowSentences int `yaml:"general_window_sentences"`
	MinSentenceRunes       int `yaml:"min_sentence_runes"`
	MaxLabelRunes          int `yaml:"max_label_runes"`
	AgendaMaxRunes         int `yaml:"agenda_max_runes"`
	AgendaFallbackRunes    int `yaml:"agenda_fallback_runes"`
	ActionMaxRunes         int `yaml:"action_max_runes"`
	PurposeMaxRunes        int `yaml:"purpose_max_runes"`
	NoteMaxRunes           int `yaml:"note_max_runes"`
	DedupePrefixRunes      int `yaml:"dedupe_prefix_runes"`
}

// Placeholder is emitted when nothing could be extracted
type Placeholder struct {
	Agenda string `yaml:"agenda"`
	Action string `yaml:"action"`
}

// Vocabulary holds every word list the heuristics consult
type Vocabulary struct {
	Limits            Limits      `yaml:"limits"`
	DefaultDeadline   string      `yaml:"default_deadline"`
	TopicKeywords     []string    `yaml:"topic_keywords"`
	ActionVerbs       []string    `yaml:"action_verbs"`
	CompletionWords   []string    `yaml:"completion_words"`
	ProgressWords     []string    `yaml:"progress_words"`
	OverdueWords      []string    `yaml:"overdue_words"`
	PurposeMarkers    []string    `yaml:"purpose_markers"`
	ConstraintWords   []string    `yaml:"constraint_words"`
	YearWords         []string    `yaml:"year_words"`
	Places            []string    `yaml:"places"`
	AssigneeStopwords []string    `yaml:"assignee_stopwords"`
	ReservedLabels    []string    `yaml:"reserved_labels"`
	TitleWords        []string    `yaml:"title_words"`
	Placeholder       Placeholder `yaml:"placeholder"`
}

// DefaultVocabulary returns the built-in tables
func DefaultVocabulary() (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(defaultVocabulary, &v); err != nil {
		return nil, fmt.Errorf("failed to parse built-in vocabulary: %w", err)
	}
	return &v, nil
}

// LoadVocabulary reads an override file on top of the built-in tables.
// Keys absent from the file keep their built-in values; lists present in
// the file replace the built-in list entirely.
func LoadVocabulary(path string) (*Vocabulary, error) {
	v, err := DefaultVocabulary()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return v, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate rejects tables that would break the pipeline's guarantees
func (v *Vocabulary) Validate() error {
	l := v.Limits
	switch {
	case l.MaxItems < 1:
		return fmt.Errorf("vocabulary: max_items must be at least 1")
	case l.MaxWindowSentences < 1 || l.GeneralWindowSentences < 1:
		return fmt.Errorf("vocabulary: window sizes must be at least 1")
	case l.AgendaMaxRunes < 1 || l.ActionMaxRunes < 1:
		return fmt.Errorf("vocabulary: field limits must be positive")
	case v.Placeholder.Agenda == "" || v.Placeholder.Action == "":
		return fmt.Errorf("vocabulary: placeholder agenda and action are required")
	}
	return nil
}
