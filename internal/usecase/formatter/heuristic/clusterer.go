package heuristic

import (
	"strings"
	"unicode/utf8"
)

// TopicWindow is a contiguous run of sentences about one topic
type TopicWindow struct {
	// Keyword is empty for the general window used when no keyword matched
	Keyword   string   `json:"keyword"`
	Sentences []string `json:"sentences"`
}

// IsGeneral reports whether no topic keyword bounds the window
func (w TopicWindow) IsGeneral() bool {
	return w.Keyword == ""
}

// Text joins the window's sentences one per line
func (w TopicWindow) Text() string {
	return strings.Join(w.Sentences, "\n")
}

type keywordHit struct {
	keyword string
	index   int
}

// Cluster groups the utterances' sentences into topic windows. Window
// boundaries depend only on the input.
func (r *Rules) Cluster(utterances []Utterance) []TopicWindow {
	texts := make([]string, 0, len(utterances))
	for _, u := range utterances {
		texts = append(texts, u.Text)
	}
	sentences := r.splitSentences(strings.Join(texts, "\n"))
	if len(sentences) == 0 {
		return nil
	}

	hits := r.keywordHits(sentences)
	limits := r.vocab.Limits

	if len(hits) == 0 {
		n := min(len(sentences), limits.GeneralWindowSentences)
		return []TopicWindow{{Sentences: sentences[:n]}}
	}

	windows := make([]TopicWindow, 0, len(hits))
	for i, h := range hits {
		end := len(sentences)
		if i+1 < len(hits) {
			end = hits[i+1].index
		}
		end = min(end, h.index+limits.MaxWindowSentences)
		windows = append(windows, TopicWindow{
			Keyword:   h.keyword,
			Sentences: sentences[h.index:end],
		})
	}
	return windows
}

// keywordHits labels each sentence with the first vocabulary keyword it
// contains and keeps the first sentence seen for each label.
func (r *Rules) keywordHits(sentences []string) []keywordHit {
	var (
		hits []keywordHit
		seen = make(map[string]bool)
	)
	for i, s := range sentences {
		lower := strings.ToLower(s)
		for _, kw := range r.vocab.TopicKeywords {
			if kw == "" || !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			if !seen[kw] {
				seen[kw] = true
				hits = append(hits, keywordHit{keyword: kw, index: i})
			}
			break
		}
	}
	return hits
}

// splitSentences cuts on 。!? and newlines, keeping the terminator, and
// drops fragments shorter than the configured minimum.
func (r *Rules) splitSentences(text string) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if utf8.RuneCountInString(s) >= r.vocab.Limits.MinSentenceRunes {
			out = append(out, s)
		}
	}

	for _, c := range text {
		switch {
		case c == '\n':
			flush()
		case strings.ContainsRune(terminators, c):
			b.WriteRune(c)
			flush()
		default:
			b.WriteRune(c)
		}
	}
	flush()
	return out
}
