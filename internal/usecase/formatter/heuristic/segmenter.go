package heuristic

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Utterance is one contiguous block of speech by a single speaker
type Utterance struct {
	// Speaker is empty for unattributed text
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

var (
	labelLine   = regexp.MustCompile(`^([^:：]+?)\s*[:：]\s*(.*)$`)
	bulletMark  = regexp.MustCompile(`^(?:[・*●○◆◇■□▪]\s*|-\s+|\d{1,2}[.)]\s+)`)
	ruleLine    = regexp.MustCompile(`^[=\-*_~]{3,}$`)
	markdownHdr = regexp.MustCompile(`^#{1,6}\s`)
	bracketHdr  = regexp.MustCompile(`^【[^】]*】$`)
)

// Segment splits text into utterances in document order. Callers should
// pass text through Normalize first so full-width colons are recognized.
func (r *Rules) Segment(text string) []Utterance {
	var (
		out     []Utterance
		current = -1
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || r.isHeader(line) {
			continue
		}
		line = bulletMark.ReplaceAllString(line, "")

		if speaker, content, ok := r.parseLabel(line); ok {
			out = append(out, Utterance{Speaker: speaker, Text: content})
			current = len(out) - 1
			continue
		}

		if current < 0 {
			out = append(out, Utterance{Text: line})
			continue
		}
		if out[current].Text == "" {
			out[current].Text = line
		} else {
			out[current].Text += " " + line
		}
	}
	return out
}

func (r *Rules) parseLabel(line string) (string, string, bool) {
	m := labelLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	label := strings.TrimSpace(m[1])
	if !r.isSpeakerLabel(label) || strings.HasPrefix(m[2], "//") {
		return "", "", false
	}
	return label, strings.TrimSpace(m[2]), true
}

func (r *Rules) isSpeakerLabel(label string) bool {
	n := utf8.RuneCountInString(label)
	if n == 0 || n >= r.vocab.Limits.MaxLabelRunes || r.reserved[label] {
		return false
	}
	digits := 0
	for _, c := range label {
		if unicode.IsPunct(c) || unicode.IsSymbol(c) {
			return false
		}
		if unicode.IsDigit(c) {
			digits++
		}
	}
	// timestamps such as "10:30"
	return digits < n
}

func (r *Rules) isHeader(line string) bool {
	if ruleLine.MatchString(line) || markdownHdr.MatchString(line) || bracketHdr.MatchString(line) {
		return true
	}
	if strings.ContainsAny(line, ":：") {
		return false
	}
	lower := strings.ToLower(line)
	return utf8.RuneCountInString(line) <= 40 && !strings.ContainsAny(line, terminators) &&
		containsAny(lower, r.vocab.TitleWords)
}
