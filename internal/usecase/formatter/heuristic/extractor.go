package heuristic

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// fieldRule is one entry of an ordered per-field rule table. apply returns
// "" when the rule does not match.
type fieldRule struct {
	name  string
	apply func(r *Rules, w TopicWindow) string
}

// regexRule runs re over the window text and returns the first non-empty
// handled match
func regexRule(name, pattern string, handle func(r *Rules, m []string) string) fieldRule {
	re := regexp.MustCompile(pattern)
	return fieldRule{
		name: name,
		apply: func(r *Rules, w TopicWindow) string {
			for _, m := range re.FindAllStringSubmatch(w.Text(), -1) {
				if v := handle(r, m); v != "" {
					return v
				}
			}
			return ""
		},
	}
}

func (r *Rules) firstMatch(rules []fieldRule, w TopicWindow) string {
	for _, rule := range rules {
		if v := strings.TrimSpace(rule.apply(r, w)); v != "" {
			return v
		}
	}
	return ""
}

func (r *Rules) buildAgendaRules() []fieldRule {
	return []fieldRule{
		{name: "topic-connective", apply: func(r *Rules, w TopicWindow) string {
			if w.IsGeneral() {
				return ""
			}
			if m := r.topicConnective[w.Keyword].FindStringSubmatch(w.Text()); m != nil {
				return m[1]
			}
			return ""
		}},
		{name: "topic-noun", apply: func(r *Rules, w TopicWindow) string {
			if w.IsGeneral() {
				return ""
			}
			if m := r.topicNoun[w.Keyword].FindStringSubmatch(w.Text()); m != nil {
				return m[1] + "の" + m[2]
			}
			return ""
		}},
		regexRule("connective", `(`+nameClass+`{2,20})`+connective, func(_ *Rules, m []string) string {
			return m[1]
		}),
		{name: "first-clause", apply: func(_ *Rules, w TopicWindow) string {
			if len(w.Sentences) == 0 {
				return ""
			}
			first := w.Sentences[0]
			if i := strings.IndexAny(first, "、,"); i >= 0 {
				first = first[:i]
			}
			first = trimSentence(first)
			if utf8.RuneCountInString(first) < 2 {
				return ""
			}
			return first
		}},
		{name: "first-sentence", apply: func(r *Rules, w TopicWindow) string {
			if len(w.Sentences) == 0 {
				return ""
			}
			return prefix(trimSentence(w.Sentences[0]), r.vocab.Limits.AgendaFallbackRunes)
		}},
	}
}

func buildAssigneeRules() []fieldRule {
	keep := func(r *Rules, m []string) string {
		return r.validAssignee(m[1])
	}
	return []fieldRule{
		regexRule("label", `担当者?\s*[:：]\s*([^\s、,。]+)`, keep),
		regexRule("verb", `(`+nameClass+`{1,10}?(?:さん|氏|様)?)(?:が|は|に)(?:担当|対応|実施|進め|参加|確認)`, keep),
		regexRule("team", `(`+nameClass+`{1,10}チーム)`, keep),
		regexRule("department", `(`+nameClass+`{1,10}部)`, keep),
		regexRule("honorific", `(`+nameClass+`{1,6})(?:さん|氏)`, func(r *Rules, m []string) string {
			if name := r.validAssignee(m[1]); name != "" {
				return name + "さん"
			}
			return ""
		}),
	}
}

// validAssignee returns candidate when it is written only in permitted
// scripts and is not a stop-word, else ""
func (r *Rules) validAssignee(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	core := candidate
	for _, suffix := range []string{"さん", "氏", "様"} {
		core = strings.TrimSuffix(core, suffix)
	}
	if core == "" || r.stop[core] || r.stop[candidate] || utf8.RuneCountInString(core) > 20 {
		return ""
	}
	if r.isDateExpression(core) {
		return ""
	}

	letters := 0
	for _, c := range core {
		switch {
		case unicode.Is(unicode.Han, c), unicode.Is(unicode.Katakana, c), unicode.Is(unicode.Latin, c):
			letters++
		case c == 'ー' || c == '・' || c == ' ' || unicode.IsDigit(c):
		default:
			return ""
		}
	}
	if letters == 0 {
		return ""
	}
	return candidate
}

// isDateExpression reports whether s reads as a deadline (明日, 来週, 2月)
// rather than a person or group
func (r *Rules) isDateExpression(s string) bool {
	for _, re := range r.deadlineRules {
		if re.MatchString(s) {
			return true
		}
	}
	_, ok := reldate.Resolve(s, dateCheckBase)
	return ok
}

// dateCheckBase anchors reldate.Resolve when only recognition matters
var dateCheckBase = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// deadlinePatterns are tried in order; compound forms precede the
// expressions they contain
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}\s*[-/年]\s*\d{1,2}\s*[-/月]\s*\d{1,2}日?`),
	regexp.MustCompile(`来年\s*\d{1,2}\s*月`),
	regexp.MustCompile(`来月末`),
	regexp.MustCompile(`今月(?:中|末|内)`),
	regexp.MustCompile(`\d{1,2}\s*月\s*\d{1,2}\s*日`),
	regexp.MustCompile(`\d{1,2}\s*月(?:末|中|内)`),
	regexp.MustCompile(`\d+\s*週間後`),
	regexp.MustCompile(`\d+\s*日後`),
	regexp.MustCompile(`来週`),
	regexp.MustCompile(`来月`),
	regexp.MustCompile(`明日`),
	regexp.MustCompile(`本日|今日`),
	regexp.MustCompile(`月末`),
	regexp.MustCompile(`\d{1,2}\s*月`),
}

func (r *Rules) extractDeadline(w TopicWindow, base time.Time) *string {
	text := w.Text()
	for _, re := range r.deadlineRules {
		for _, expr := range re.FindAllString(text, -1) {
			if d, ok := reldate.Resolve(expr, base); ok {
				return &d
			}
		}
	}
	return r.defaultDeadline(base)
}

func (r *Rules) defaultDeadline(base time.Time) *string {
	if r.vocab.DefaultDeadline == "" {
		return nil
	}
	if d, ok := reldate.Resolve(r.vocab.DefaultDeadline, base); ok {
		return &d
	}
	return nil
}

func (r *Rules) extractAction(w TopicWindow) string {
	var picked []string
	for _, s := range w.Sentences {
		if containsAny(s, r.vocab.ActionVerbs) {
			picked = append(picked, s)
			if len(picked) == 2 {
				break
			}
		}
	}
	if len(picked) == 0 {
		picked = w.Sentences[:min(2, len(w.Sentences))]
	}
	return truncate(joinSentences(picked), r.vocab.Limits.ActionMaxRunes, "…")
}

func joinSentences(sentences []string) string {
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString(s)
		if last, _ := utf8.DecodeLastRuneInString(s); !strings.ContainsRune(terminators, last) {
			b.WriteString("。")
		}
	}
	return b.String()
}

func (r *Rules) extractStatus(w TopicWindow) entities.ItemStatus {
	text := w.Text()
	switch {
	case containsAny(text, r.vocab.CompletionWords):
		return entities.StatusCompleted
	case containsAny(text, r.vocab.ProgressWords):
		return entities.StatusInProgress
	case containsAny(text, r.vocab.OverdueWords):
		return entities.StatusOverdue
	}
	return entities.StatusPending
}

func (r *Rules) extractPurpose(w TopicWindow) string {
	for _, s := range w.Sentences {
		if m := r.purposeRule.FindString(s); m != "" {
			if p := trimSentence(m); p != "" {
				return truncate(p, r.vocab.Limits.PurposeMaxRunes, "…")
			}
		}
	}
	return entities.DefaultPurpose
}

// extractQuantityNote finds the clause carrying an amount, count,
// percentage or year reference
func (r *Rules) extractQuantityNote(w TopicWindow) string {
	for _, s := range w.Sentences {
		if loc := r.quantityRule.FindStringIndex(s); loc != nil {
			return truncate(fragmentAround(s, loc[0], loc[1]), r.vocab.Limits.NoteMaxRunes, "…")
		}
	}
	return ""
}

// extractPlaceNote prefers a gazetteer place, then constraint vocabulary
func (r *Rules) extractPlaceNote(w TopicWindow) string {
	for _, words := range [][]string{r.vocab.Places, r.vocab.ConstraintWords} {
		for _, s := range w.Sentences {
			for _, word := range words {
				if word == "" {
					continue
				}
				if i := strings.Index(s, word); i >= 0 {
					return truncate(fragmentAround(s, i, i+len(word)), r.vocab.Limits.NoteMaxRunes, "…")
				}
			}
		}
	}
	return ""
}

// fragmentAround returns the comma-delimited clause of s containing the
// byte range [start, end)
func fragmentAround(s string, start, end int) string {
	from := 0
	if i := strings.LastIndexAny(s[:start], "、,"); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		from = i + size
	}
	to := len(s)
	if j := strings.IndexAny(s[end:], "、,"); j >= 0 {
		to = end + j
	}
	return trimSentence(s[from:to])
}

// Extract derives one item from a topic window
func (r *Rules) Extract(w TopicWindow, base time.Time) entities.ExtractedItem {
	item := entities.ExtractedItem{
		Agenda:   prefix(r.firstMatch(r.agendaRules, w), r.vocab.Limits.AgendaMaxRunes),
		Action:   r.extractAction(w),
		Assignee: r.firstMatch(r.assigneeRules, w),
		Deadline: r.extractDeadline(w, base),
		Purpose:  r.extractPurpose(w),
		Status:   r.extractStatus(w),
		Notes1:   r.extractQuantityNote(w),
		Notes2:   r.extractPlaceNote(w),
	}
	return item.Normalize(base)
}
