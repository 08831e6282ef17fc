// Package reldate resolves Japanese and English relative date expressions
// ("来週", "月末", "2週間後", "next week") into calendar dates.
package reldate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Layout is the normalized output form
const Layout = "2006-01-02"

// Resolved dates must stay within four-digit years
const (
	minYear = 1
	maxYear = 9999

	// maxCount bounds "N日後" / "N週間後" so AddDate cannot overflow
	maxCount = 3_660_000
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDate reports whether s is already a normalized YYYY-MM-DD date
func IsDate(s string) bool {
	if !isoDate.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

type rule struct {
	pattern *regexp.Regexp
	resolve func(m []string, base time.Time) (time.Time, bool)
}

// rules are evaluated in order; the first matching pattern wins. Compound
// expressions (来月末, 来年M月, 12月末) must precede their substrings (月末, 来月).
var rules = []rule{
	{regexp.MustCompile(`^(\d{4})\s*[-/年.]\s*(\d{1,2})\s*[-/月.]\s*(\d{1,2})\s*日?$`), absolute},
	{regexp.MustCompile(`来年\s*(\d{1,2})\s*月`), func(m []string, base time.Time) (time.Time, bool) {
		month := atoi(m[1])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		return date(base.Year()+1, time.Month(month), 28, base), true
	}},
	{regexp.MustCompile(`来月末|end of next month`), func(_ []string, base time.Time) (time.Time, bool) {
		return endOfMonth(base.Year(), base.Month()+1, base), true
	}},
	{regexp.MustCompile(`(\d{1,2})\s*月\s*(\d{1,2})\s*日`), func(m []string, base time.Time) (time.Time, bool) {
		month, day := atoi(m[1]), atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > daysIn(base.Year(), time.Month(month)) {
			return time.Time{}, false
		}
		t := date(base.Year(), time.Month(month), day, base)
		if t.Before(base) {
			t = date(base.Year()+1, time.Month(month), day, base)
		}
		return t, true
	}},
	{regexp.MustCompile(`(\d{1,2})\s*月(?:末|中|内)?`), func(m []string, base time.Time) (time.Time, bool) {
		month := atoi(m[1])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		year := base.Year()
		if time.Month(month) < base.Month() {
			year++
		}
		return endOfMonth(year, time.Month(month), base), true
	}},
	{regexp.MustCompile(`今月(?:中|末|内)|月末|end of (?:the )?month`), func(_ []string, base time.Time) (time.Time, bool) {
		return endOfMonth(base.Year(), base.Month(), base), true
	}},
	{regexp.MustCompile(`(\d+)\s*週間?後|in (\d+) weeks?|(\d+) weeks? later`), func(m []string, base time.Time) (time.Time, bool) {
		n, ok := firstCount(m[1:])
		if !ok {
			return time.Time{}, false
		}
		return base.AddDate(0, 0, 7*n), true
	}},
	{regexp.MustCompile(`(\d+)\s*日後|in (\d+) days?|(\d+) days? later`), func(m []string, base time.Time) (time.Time, bool) {
		n, ok := firstCount(m[1:])
		if !ok {
			return time.Time{}, false
		}
		return base.AddDate(0, 0, n), true
	}},
	{regexp.MustCompile(`来週|next week`), func(_ []string, base time.Time) (time.Time, bool) {
		return base.AddDate(0, 0, 7), true
	}},
	{regexp.MustCompile(`来月|next month`), func(_ []string, base time.Time) (time.Time, bool) {
		return base.AddDate(0, 1, 0), true
	}},
	{regexp.MustCompile(`明日|tomorrow`), func(_ []string, base time.Time) (time.Time, bool) {
		return base.AddDate(0, 0, 1), true
	}},
	{regexp.MustCompile(`今日|本日|today`), func(_ []string, base time.Time) (time.Time, bool) {
		return base, true
	}},
}

// Resolve converts expr into a YYYY-MM-DD string relative to base. Input
// already in YYYY-MM-DD form is returned unchanged. ok is false when the
// expression is not recognized.
func Resolve(expr string, base time.Time) (string, bool) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return "", false
	}
	if IsDate(s) {
		return s, true
	}

	s = strings.ToLower(width.Fold.String(s))
	day := Day(base)

	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if t, ok := r.resolve(m, day); ok && t.Year() >= minYear && t.Year() <= maxYear {
			return t.Format(Layout), true
		}
		return "", false
	}
	return "", false
}

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	return date(t.Year(), t.Month(), t.Day(), t)
}

// MustParse parses a YYYY-MM-DD string, panicking on malformed input.
// Intended for tests and constants.
func MustParse(s string) time.Time {
	t, err := time.Parse(Layout, s)
	if err != nil {
		panic(fmt.Sprintf("reldate: %v", err))
	}
	return t
}

func absolute(m []string, base time.Time) (time.Time, bool) {
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, false
	}
	return date(year, time.Month(month), day, base), true
}

func date(year int, month time.Month, day int, base time.Time) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

// endOfMonth normalizes month overflow (month 13 is January next year)
func endOfMonth(year int, month time.Month, base time.Time) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, base.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// firstCount returns the first non-empty group as a day or week count.
// Counts that overflow int or exceed maxCount are rejected.
func firstCount(groups []string) (int, bool) {
	for _, g := range groups {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil || n > maxCount {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
