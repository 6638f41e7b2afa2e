// Package autoplay drives a pet with a language model. A Driver shows the
// model the rendered screen every call period and pushes the letter it
// answers with into the session's input queue, exactly as a player typing
// would. A Harness chains several runs and writes the stat and summary logs.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/gotchi/internal/config"
)

// Roles used in Message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a provider-agnostic conversation turn.
type Message struct {
	Role string // "user" or "assistant"
	Text string
}

// Provider abstracts the model API (Claude, Gemini).
type Provider interface {
	Send(ctx context.Context, systemPrompt string, history []Message) (string, error)
}

// ErrNoProvider is returned when no API key is configured.
var ErrNoProvider = errors.New("autoplay: no API key configured (set ANTHROPIC_API_KEY or GOOGLE_API_KEY)")

// NewProvider auto-detects or forces the provider from cfg.
// An explicit provider wins; otherwise Claude is preferred when both keys are set.
func NewProvider(ctx context.Context, cfg config.AutoplayConfig) (Provider, error) {
	pick := strings.ToLower(cfg.Provider)

	// Auto-detect if not forced
	if pick == "" {
		switch {
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		default:
			return nil, ErrNoProvider
		}
	}

	switch pick {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("autoplay: provider claude selected but ANTHROPIC_API_KEY is not set")
		}
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.MaxTokens), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("autoplay: provider gemini selected but GOOGLE_API_KEY is not set")
		}
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
		if err != nil {
			return nil, fmt.Errorf("autoplay: create gemini provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("autoplay: unknown provider %q", cfg.Provider)
	}
}
