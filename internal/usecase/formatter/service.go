package formatter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

// Service turns a raw transcript into structured minute items
type Service interface {
	FormatRawText(ctx context.Context, in FormatInput) (*FormatResult, error)
}

// FormatInput is one formatting request
type FormatInput struct {
	RawText         string
	MeetingDate     time.Time
	ModelPreference string
	// LocalOnly skips the remote path entirely
	LocalOnly bool
}

// FormatResult carries the items and how they were produced
type FormatResult struct {
	Items          []entities.ExtractedItem
	Source         entities.FormatSource
	Model          string
	Fallback       bool
	FallbackReason string
	Cached         bool
}

// Meta converts the result into the metadata stored with a minute
func (r *FormatResult) Meta() entities.FormatMeta {
	return entities.FormatMeta{
		Source:         r.Source,
		Model:          r.Model,
		Fallback:       r.Fallback,
		FallbackReason: r.FallbackReason,
		Cached:         r.Cached,
	}
}

// LocalExtractor is the deterministic path, satisfied by *heuristic.Rules
type LocalExtractor interface {
	Run(text string, base time.Time) []entities.ExtractedItem
}

// ResultCache stores remote results between identical requests
type ResultCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Options configures the orchestrator
type Options struct {
	PreferRemote bool
	CacheTTL     time.Duration
}

type formatterService struct {
	remote *RemoteFormatter
	local  LocalExtractor
	cache  ResultCache
	opts   Options
	logger *zap.Logger
}

var _ Service = (*formatterService)(nil)

// NewService constructs the orchestrator. remote and cache may be nil.
func NewService(remote *RemoteFormatter, local LocalExtractor, cache ResultCache, opts Options, logger *zap.Logger) Service {
	return &formatterService{
		remote: remote,
		local:  local,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

// FormatRawText runs the configured strategy. Remote failures fall back to
// the local rules; an error is returned only when both paths fail.
func (s *formatterService) FormatRawText(ctx context.Context, in FormatInput) (*FormatResult, error) {
	in.MeetingDate = reldate.Day(in.MeetingDate)

	if in.LocalOnly || !s.remote.Enabled() {
		res, err := s.runLocal(in)
		if err != nil {
			return nil, &FormattingError{Remote: ErrRemoteDisabled, Local: err}
		}
		return s.finish(res), nil
	}

	if !s.opts.PreferRemote {
		res, localErr := s.runLocal(in)
		if localErr == nil {
			return s.finish(res), nil
		}
		if s.logger != nil {
			s.logger.Error("local formatter failed, trying remote", zap.Error(localErr))
		}
		res, remoteErr := s.runRemote(ctx, in)
		if remoteErr != nil {
			return nil, &FormattingError{Remote: remoteErr, Local: localErr}
		}
		res.Fallback = true
		res.FallbackReason = "local"
		return s.finish(res), nil
	}

	res, remoteErr := s.runRemote(ctx, in)
	if remoteErr == nil {
		return s.finish(res), nil
	}

	reason := fallbackReason(remoteErr)
	metrics.IncrementFormatFallback(reason)
	if s.logger != nil {
		s.logger.Warn("remote formatter failed, falling back to local rules",
			zap.String("reason", reason),
			zap.Error(remoteErr),
		)
	}

	res, localErr := s.runLocal(in)
	if localErr != nil {
		return nil, &FormattingError{Remote: remoteErr, Local: localErr}
	}
	res.Fallback = true
	res.FallbackReason = reason
	return s.finish(res), nil
}

func (s *formatterService) finish(res *FormatResult) *FormatResult {
	source := string(res.Source)
	if res.Cached {
		source = "cache"
	}
	metrics.IncrementFormatRequest(source)
	metrics.ObserveFormatItems(string(res.Source), len(res.Items))
	return res
}

// runLocal converts a panic in the rule engine into an error
func (s *formatterService) runLocal(in FormatInput) (res *FormatResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("local formatter panicked: %v", r)
		}
	}()

	if s.local == nil {
		return nil, fmt.Errorf("local formatter is not configured")
	}
	items := s.local.Run(in.RawText, in.MeetingDate)
	if len(items) == 0 {
		return nil, fmt.Errorf("local formatter produced no items")
	}
	return &FormatResult{Items: items, Source: entities.FormatSourceLocal}, nil
}

type cacheEntry struct {
	Model string                   `json:"model"`
	Items []entities.ExtractedItem `json:"items"`
}

func (s *formatterService) runRemote(ctx context.Context, in FormatInput) (*FormatResult, error) {
	if !s.remote.Enabled() {
		return nil, ErrRemoteDisabled
	}

	model := s.remote.SelectModel(in.RawText, in.ModelPreference)
	key := cacheKey(model, in.MeetingDate, in.RawText)
	if entry, ok := s.cached(ctx, key); ok {
		return &FormatResult{Items: entry.Items, Source: entities.FormatSourceRemote, Model: entry.Model, Cached: true}, nil
	}

	items, usedModel, err := s.remote.Format(ctx, FormatInput{
		RawText:         in.RawText,
		MeetingDate:     in.MeetingDate,
		ModelPreference: model,
	})
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, cacheEntry{Model: usedModel, Items: items})
	return &FormatResult{Items: items, Source: entities.FormatSourceRemote, Model: usedModel}, nil
}

func (s *formatterService) cached(ctx context.Context, key string) (*cacheEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("formatter cache read failed", zap.Error(err))
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || len(entry.Items) == 0 {
		return nil, false
	}
	return &entry, true
}

func (s *formatterService) store(ctx context.Context, key string, entry cacheEntry) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.opts.CacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("formatter cache write failed", zap.Error(err))
	}
}

func cacheKey(model string, date time.Time, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(date.Format(reldate.Layout)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "minutes:format:" + hex.EncodeToString(h.Sum(nil))
}
