package formatter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
)

// Request settings for the completion call
const (
	remoteTemperature = 0.2
	remoteMaxTokens   = 4000
)

// Model tiers chosen by transcript length
const (
	ModelLarge  = "gpt-5.1"
	ModelMedium = "gpt-5"
	ModelSmall  = "gpt-5-mini"

	largeTranscriptRunes  = 5000
	mediumTranscriptRunes = 2000
)

// KnownModels lists the model names a caller may request
var KnownModels = []string{ModelLarge, ModelMedium, ModelSmall}

// IsKnownModel reports whether name is one of KnownModels
func IsKnownModel(name string) bool {
	for _, m := range KnownModels {
		if m == name {
			return true
		}
	}
	return false
}

// ChatCompleter is the completion transport, satisfied by *ai.OpenAIClient
type ChatCompleter interface {
	Enabled() bool
	ChatCompletion(ctx context.Context, req ai.ChatRequest) (*ai.ChatResult, error)
}

// RemoteFormatter delegates extraction to a hosted language model
type RemoteFormatter struct {
	client       ChatCompleter
	defaultModel string
	autoSelect   bool
	logger       *zap.Logger
}

// NewRemoteFormatter creates a RemoteFormatter
func NewRemoteFormatter(client ChatCompleter, defaultModel string, autoSelect bool, logger *zap.Logger) *RemoteFormatter {
	if defaultModel == "" {
		defaultModel = ModelMedium
	}
	return &RemoteFormatter{
		client:       client,
		defaultModel: defaultModel,
		autoSelect:   autoSelect,
		logger:       logger,
	}
}

// Enabled reports whether a remote call can be attempted
func (f *RemoteFormatter) Enabled() bool {
	return f != nil && f.client != nil && f.client.Enabled()
}

// SelectModel picks the model for a transcript. A preference wins when it
// is a known model or the configured default; anything else is ignored.
func (f *RemoteFormatter) SelectModel(rawText, preference string) string {
	if preference != "" {
		if IsKnownModel(preference) || preference == f.defaultModel {
			return preference
		}
		if f.logger != nil {
			f.logger.Warn("ignoring unknown model preference", zap.String("preference", preference))
		}
	}
	if !f.autoSelect {
		return f.defaultModel
	}
	switch n := utf8.RuneCountInString(rawText); {
	case n > largeTranscriptRunes:
		return ModelLarge
	case n > mediumTranscriptRunes:
		return ModelMedium
	default:
		return ModelSmall
	}
}

// Format returns the model's items for one transcript. Failures are
// *RemoteCallError or *SchemaError.
func (f *RemoteFormatter) Format(ctx context.Context, in FormatInput) ([]entities.ExtractedItem, string, error) {
	model := f.SelectModel(in.RawText, in.ModelPreference)
	if !f.Enabled() {
		return nil, model, ErrRemoteDisabled
	}

	system, user := BuildPrompts(in.RawText, in.MeetingDate)
	req := ai.ChatRequest{
		Model: model,
		Messages: []ai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    remoteTemperature,
		MaxTokens:      remoteMaxTokens,
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	}

	start := time.Now()
	res, err := f.client.ChatCompletion(ctx, req)
	if err != nil {
		callErr := &RemoteCallError{Model: model, Err: err}
		var statusErr *ai.StatusError
		if errors.As(err, &statusErr) {
			callErr.StatusCode = statusErr.StatusCode
		}
		metrics.RecordRemoteCallLatency(model, callStatus(callErr.StatusCode), time.Since(start))
		return nil, model, callErr
	}
	metrics.RecordRemoteCallLatency(model, callStatus(http.StatusOK), time.Since(start))

	if res.Model != "" {
		model = res.Model
	}
	if f.logger != nil {
		f.logger.Debug("remote formatter responded",
			zap.String("model", model),
			zap.Int("attempts", res.Attempts),
			zap.Int("total_tokens", res.TotalTokens),
			zap.Int("content_length", len(res.Content)),
		)
	}

	items, err := ParseItems(res.Content, in.MeetingDate)
	if err != nil {
		return nil, model, err
	}
	return items, model, nil
}

func callStatus(code int) string {
	if code == 0 {
		return "network_error"
	}
	return strconv.Itoa(code)
}
