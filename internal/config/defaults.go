package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gotchi.yaml
var defaultGotchiYAML []byte

// DefaultGameConfig returns the hardcoded configuration used when even the
// embedded YAML cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Timing: TimingConfig{
			NeedsInterval:    120 * time.Second,
			TicksPerInterval: 120,
			FrameRate:        10,
			TimeZone:         "US/Eastern",
		},
		Storage: StorageConfig{
			DBPath: "~/.gotchi/gotchi.db",
		},
		Autoplay: AutoplayConfig{
			ClaudeModel:   "claude-sonnet-4-5-20250929",
			GeminiModel:   "gemini-2.5-flash",
			MaxTokens:     1024,
			CallPeriod:    120 * time.Second,
			RetryDelay:    10 * time.Second,
			Runs:          2,
			HistoryWindow: 40,
			LogDir:        "~/.gotchi/logs",
		},
	}
}
