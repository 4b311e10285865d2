package chatbot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Providers
const (
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
)

// Config selects and tunes the responder
type Config struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New builds the configured responder
func New(ctx context.Context, cfg Config, events EventSource, logger zerolog.Logger) (Responder, error) {
	rules := NewRuleResponder(events)

	switch cfg.Provider {
	case "", ProviderRules:
		return rules, nil
	case ProviderGemini:
		gen, err := NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("model", cfg.Model).Dur("timeout", cfg.Timeout).Msg("Gemini chatbot enabled")
		return NewLLMResponder(gen, rules, events, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported chatbot provider %q", cfg.Provider)
	}
}
