package formatter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter/heuristic"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// NewFromConfig assembles the remote client, the heuristic rules and the
// orchestrator. cache may be nil.
func NewFromConfig(cfg *config.Config, cache ResultCache, logger *zap.Logger) (Service, error) {
	rules := heuristic.Default()
	if path := cfg.Formatter.VocabularyFile; path != "" {
		vocab, err := heuristic.LoadVocabulary(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary %s: %w", path, err)
		}
		if rules, err = heuristic.NewRules(vocab); err != nil {
			return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
		}
	}

	client := ai.NewOpenAIClient(cfg.LLM)
	remote := NewRemoteFormatter(client, cfg.LLM.Model, cfg.LLM.AutoSelectModel, logger)

	if logger != nil {
		logger.Info("formatter configured",
			zap.Bool("remote_enabled", remote.Enabled()),
			zap.Bool("prefer_remote", cfg.Formatter.PreferRemote),
			zap.String("default_model", cfg.LLM.Model),
			zap.Bool("auto_select_model", cfg.LLM.AutoSelectModel),
		)
	}

	return NewService(remote, rules, cache, Options{
		PreferRemote: cfg.Formatter.PreferRemote,
		CacheTTL:     cfg.Formatter.CacheTTL,
	}, logger), nil
}
