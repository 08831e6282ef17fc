package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_SpeakerContinuation(t *testing.T) {
	got := Default().Segment("田中: Aを検討する。\n次にBも確認する。\n鈴木: Cを対応する。")

	require.Len(t, got, 2)
	assert.Equal(t, Utterance{Speaker: "田中", Text: "Aを検討する。 次にBも確認する。"}, got[0])
	assert.Equal(t, Utterance{Speaker: "鈴木", Text: "Cを対応する。"}, got[1])
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Utterance
	}{
		{
			name:  "lines before first label are unattributed",
			input: "第1回定例\n補足事項あり。\n田中: 了解です。",
			want: []Utterance{
				{Text: "第1回定例"},
				{Text: "補足事項あり。"},
				{Speaker: "田中", Text: "了解です。"},
			},
		},
		{
			name:  "headers and rules are skipped",
			input: "# 定例会議 議事録\n=====\n【議題】\n\n田中: 予算を確認する。",
			want:  []Utterance{{Speaker: "田中", Text: "予算を確認する。"}},
		},
		{
			name:  "reserved labels stay with the speaker",
			input: "田中: 見積を作成する。\n期限: 来週\n鈴木: 了解。",
			want: []Utterance{
				{Speaker: "田中", Text: "見積を作成する。 期限: 来週"},
				{Speaker: "鈴木", Text: "了解。"},
			},
		},
		{
			name:  "timestamps are not labels",
			input: "10:30 開始",
			want:  []Utterance{{Text: "10:30 開始"}},
		},
		{
			name:  "labels with punctuation are rejected",
			input: "注意事項、重要: 明日まで",
			want:  []Utterance{{Text: "注意事項、重要: 明日まで"}},
		},
		{
			name:  "bullets are stripped",
			input: "・田中: 資料を共有する。\n- 補足します。",
			want:  []Utterance{{Speaker: "田中", Text: "資料を共有する。 補足します。"}},
		},
		{
			name:  "empty label content collects following lines",
			input: "Speaker 1:\n予算を確認する。",
			want:  []Utterance{{Speaker: "Speaker 1", Text: "予算を確認する。"}},
		},
		{
			name:  "blank input",
			input: "\n\n  \n",
			want:  nil,
		},
	}

	rules := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Segment(tt.input))
		})
	}
}

func TestSegment_FullWidthColonAfterNormalize(t *testing.T) {
	got := Default().Segment(Normalize("田中：確認します。\r\n鈴木：了解。"))

	require.Len(t, got, 2)
	assert.Equal(t, "田中", got[0].Speaker)
	assert.Equal(t, "確認します。", got[0].Text)
	assert.Equal(t, "鈴木", got[1].Speaker)
}
