// Package heuristic is the deterministic, rule-based minutes extractor used
// when the remote model is unavailable. It segments a transcript by speaker,
// groups sentences into keyword-bounded topic windows and derives one
// ExtractedItem per window from ordered rule tables.
package heuristic

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Rules is the compiled form of a Vocabulary. It is read-only after
// construction and safe for concurrent use.
type Rules struct {
	vocab *Vocabulary

	reserved map[string]bool
	stop     map[string]bool

	// agenda patterns keyed by topic keyword
	topicConnective map[string]*regexp.Regexp
	topicNoun       map[string]*regexp.Regexp

	agendaRules   []fieldRule
	assigneeRules []fieldRule
	deadlineRules []*regexp.Regexp
	purposeRule   *regexp.Regexp
	quantityRule  *regexp.Regexp
}

// NewRules compiles v. v must not be modified afterwards.
func NewRules(v *Vocabulary) (*Rules, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	r := &Rules{
		vocab:           v,
		reserved:        toSet(v.ReservedLabels),
		stop:            toSet(v.AssigneeStopwords),
		topicConnective: make(map[string]*regexp.Regexp, len(v.TopicKeywords)),
		topicNoun:       make(map[string]*regexp.Regexp, len(v.TopicKeywords)),
	}

	for _, kw := range v.TopicKeywords {
		q := regexp.QuoteMeta(kw)
		r.topicConnective[kw] = regexp.MustCompile(`(?i)(` + nameClass + `{0,10}` + q + nameClass + `{0,10})` + connective)
		r.topicNoun[kw] = regexp.MustCompile(`(?i)(` + q + `)の(` + nameClass + `{1,12})`)
	}

	r.agendaRules = r.buildAgendaRules()
	r.assigneeRules = buildAssigneeRules()
	r.deadlineRules = deadlinePatterns
	r.purposeRule = regexp.MustCompile(`[^。!?\n]*(?:` + alternation(v.PurposeMarkers) + `)[^。!?\n]*`)
	r.quantityRule = regexp.MustCompile(quantityPattern + `|` + alternation(v.YearWords))

	return r, nil
}

// Default compiles the built-in vocabulary
func Default() *Rules {
	v, err := DefaultVocabulary()
	if err != nil {
		panic(err)
	}
	r, err := NewRules(v)
	if err != nil {
		panic(err)
	}
	return r
}

// Vocabulary returns the tables the rules were compiled from
func (r *Rules) Vocabulary() *Vocabulary {
	return r.vocab
}

// Normalize folds full-width ASCII to half-width and half-width katakana
// to full-width, and unifies line endings.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return width.Fold.String(text)
}

const (
	// letters allowed in names and noun phrases
	nameClass  = `[\p{Han}\p{Katakana}ーA-Za-z0-9]`
	connective = `(?:について|に関して|に関する|の件)`

	quantityPattern = `\d[\d,.]*(?:\s*[-〜~]\s*\d[\d,.]*)?\s*(?:万円|億円|千円|円|件|名|人|%|社|個|回|日)`
)

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func alternation(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 {
		// matches nothing
		return `[^\s\S]`
	}
	return strings.Join(quoted, "|")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// truncate cuts s to max runes, appending suffix when it had to cut
func truncate(s string, max int, suffix string) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + suffix
}

func prefix(s string, n int) string {
	return truncate(s, n, "")
}

const terminators = "。!?"

func trimSentence(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), terminators+"、,")
}
