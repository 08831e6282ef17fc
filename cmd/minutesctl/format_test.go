package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter/heuristic"
)

const notes = `田中：Wiseの導入について、来週までに見積もりを取ります。
佐藤：予算は月末に確定します。`

func localService() formatter.Service {
	return formatter.NewService(nil, heuristic.Default(), nil, formatter.Options{PreferRemote: true}, nil)
}

func TestRunFormat_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runFormat(context.Background(), &out, localService(), notes, &formatOptions{date: "2026-01-15", local: true})
	require.NoError(t, err)

	var doc struct {
		Source string `json:"source"`
		Items  []struct {
			Agenda   string  `json:"agenda"`
			Deadline *string `json:"deadline"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "local", doc.Source)
	require.NotEmpty(t, doc.Items)
	assert.NotContains(t, out.String(), `\u`, "Japanese text is written unescaped")
}

func TestRunFormat_YAML(t *testing.T) {
	var out bytes.Buffer
	err := runFormat(context.Background(), &out, localService(), notes, &formatOptions{date: "2026-01-15", local: true, output: "yaml"})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "local", doc["source"])
	assert.NotEmpty(t, doc["items"])
}

func TestRunFormat_UnknownOutput(t *testing.T) {
	err := runFormat(context.Background(), &bytes.Buffer{}, localService(), notes, &formatOptions{date: "2026-01-15", output: "xml"})
	assert.Error(t, err)
}

func TestRunFormat_UnknownModel(t *testing.T) {
	err := runFormat(context.Background(), &bytes.Buffer{}, localService(), notes, &formatOptions{date: "2026-01-15", model: "model-x-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestReadInput(t *testing.T) {
	text, err := readInput(strings.NewReader("議題：予算"), nil)
	require.NoError(t, err)
	assert.Equal(t, "議題：予算", text)

	text, err = readInput(strings.NewReader("議題：予算"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "議題：予算", text)

	_, err = readInput(strings.NewReader("  \n"), nil)
	assert.Error(t, err)

	_, err = readInput(strings.NewReader(""), []string{"/does/not/exist.txt"})
	assert.Error(t, err)
}

func TestFormatCommand_RejectsBadDate(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"format", "--date", "15/01/2026", "-"})
	cmd.SetIn(strings.NewReader(notes))
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
