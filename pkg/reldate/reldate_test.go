package reldate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	base := MustParse("2026-01-15")

	tests := []struct {
		name string
		expr string
		want string
		ok   bool
	}{
		{"end of month", "月末", "2026-01-31", true},
		{"next week", "来週", "2026-01-22", true},
		{"passthrough", "2026-03-02", "2026-03-02", true},
		{"unparseable", "unparseable", "", false},
		{"empty", "  ", "", false},
		{"today", "本日中に", "2026-01-15", true},
		{"tomorrow", "明日まで", "2026-01-16", true},
		{"next month", "来月", "2026-02-15", true},
		{"end of next month", "来月末までに", "2026-02-28", true},
		{"this month", "今月中", "2026-01-31", true},
		{"days later", "3日後", "2026-01-18", true},
		{"weeks later", "2週間後", "2026-01-29", true},
		{"full width digits", "２週間後", "2026-01-29", true},
		{"next year month", "来年4月", "2027-04-28", true},
		{"slashed absolute", "2026/2/3", "2026-02-03", true},
		{"kanji absolute", "2026年3月10日", "2026-03-10", true},
		{"invalid absolute", "2026/13/40", "", false},
		{"month and day", "2月10日", "2026-02-10", true},
		{"month and day rolls over", "1月10日", "2027-01-10", true},
		{"month mention", "2月に", "2026-02-28", true},
		{"past month mention", "12月末", "2026-12-31", true},
		{"english today", "Today", "2026-01-15", true},
		{"english days", "in 10 days", "2026-01-25", true},
		{"english weeks", "3 weeks later", "2026-02-05", true},
		{"english end of month", "end of month", "2026-01-31", true},
		{"days past year 9999", "9999999日後", "", false},
		{"day count overflows int", "99999999999999999999日後", "", false},
		{"week count overflows int", "99999999999999999999週間後", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.expr, base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	base := MustParse("2026-01-15")
	first, ok := Resolve("来週", base)
	assert.True(t, ok)

	second, ok := Resolve(first, MustParse("2030-06-01"))
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	base := MustParse("2026-01-31").Add(23 * 3600e9)
	got, ok := Resolve("明日", base)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-01", got)
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2026-01-31"))
	assert.False(t, IsDate("2026-02-30"))
	assert.False(t, IsDate("2026-1-3"))
}
