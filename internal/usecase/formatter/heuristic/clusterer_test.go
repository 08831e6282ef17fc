package heuristic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wiseTranscript = "Speaker 1: Wise導入について再検討したい。金額条件を整理して提案する。\n" +
	"Speaker 2: Wiseは為替手数料が安い。0.6-0.8%で済む。\n" +
	"Speaker 1: 口座の残高上限が100万円なので注意が必要。\n" +
	"Speaker 2: NetStarsとの使い分けルールを決める。月次報告に含める。"

func TestCluster_KeywordWindows(t *testing.T) {
	rules := Default()
	windows := rules.Cluster(rules.Segment(wiseTranscript))

	require.Len(t, windows, 5)

	var keywords []string
	var sizes []int
	for _, w := range windows {
		keywords = append(keywords, w.Keyword)
		sizes = append(sizes, len(w.Sentences))
	}
	assert.Equal(t, []string{"導入", "手数料", "口座", "ルール", "報告"}, keywords)
	assert.Equal(t, []int{2, 2, 1, 1, 1}, sizes)
	assert.Equal(t, "Wiseは為替手数料が安い。", windows[1].Sentences[0])
	assert.Equal(t, "0.6-0.8%で済む。", windows[1].Sentences[1])
}

func TestCluster_GeneralWindowIsBounded(t *testing.T) {
	var lines []string
	for i := 1; i <= 7; i++ {
		lines = append(lines, fmt.Sprintf("項目%dを見た。", i))
	}

	rules := Default()
	windows := rules.Cluster(rules.Segment(strings.Join(lines, "\n")))

	require.Len(t, windows, 1)
	assert.True(t, windows[0].IsGeneral())
	assert.Len(t, windows[0].Sentences, rules.Vocabulary().Limits.GeneralWindowSentences)
}

func TestCluster_WindowSizeCap(t *testing.T) {
	lines := []string{"予算を確認する。"}
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("項目%dを見た。", i))
	}

	rules := Default()
	windows := rules.Cluster(rules.Segment(strings.Join(lines, "\n")))

	require.Len(t, windows, 1)
	assert.Equal(t, "予算", windows[0].Keyword)
	assert.Len(t, windows[0].Sentences, rules.Vocabulary().Limits.MaxWindowSentences)
}

func TestCluster_DropsShortFragmentsAndEmptyInput(t *testing.T) {
	rules := Default()
	assert.Nil(t, rules.Cluster(nil))
	assert.Nil(t, rules.Cluster([]Utterance{{Text: "はい。うん。"}}))
}

func TestCluster_Deterministic(t *testing.T) {
	rules := Default()
	utts := rules.Segment(wiseTranscript)
	assert.Equal(t, rules.Cluster(utts), rules.Cluster(utts))
}
