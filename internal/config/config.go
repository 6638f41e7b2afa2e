// Package config provides YAML-based configuration loading for gotchi.
package config

import "time"

// GameConfig is the full gotchi configuration.
type GameConfig struct {
	Timing    TimingConfig    `yaml:"timing"`
	Resources ResourcesConfig `yaml:"resources"`
	Storage   StorageConfig   `yaml:"storage"`
	Autoplay  AutoplayConfig  `yaml:"autoplay"`
}

// TimingConfig maps real time to engine ticks.
type TimingConfig struct {
	NeedsInterval    time.Duration `yaml:"needs_interval"`
	TicksPerInterval int           `yaml:"ticks_per_interval"`
	FrameRate        int           `yaml:"frame_rate"` // redraws per second
	TimeZone         string        `yaml:"time_zone"`
}

// Location resolves TimeZone, falling back to the local zone.
func (t TimingConfig) Location() *time.Location {
	if t.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(t.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// FrameInterval is the delay between redraws.
func (t TimingConfig) FrameInterval() time.Duration {
	if t.FrameRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(t.FrameRate)
}

// ResourcesConfig points at the phrase and event tables.
// Empty paths select the embedded defaults.
type ResourcesConfig struct {
	PhrasesPath string `yaml:"phrases_path"`
	EventsPath  string `yaml:"events_path"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// AutoplayConfig configures the LLM-driven player.
type AutoplayConfig struct {
	Provider      string        `yaml:"provider"` // "claude", "gemini", or "" (auto-detect)
	ClaudeModel   string        `yaml:"claude_model"`
	GeminiModel   string        `yaml:"gemini_model"`
	MaxTokens     int64         `yaml:"max_tokens"`
	CallPeriod    time.Duration `yaml:"call_period"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	Runs          int           `yaml:"runs"`
	HistoryWindow int           `yaml:"history_window"` // messages sent per call and to the retrospective
	LogDir        string        `yaml:"log_dir"`

	// Secrets come from the environment only.
	ClaudeAPIKey string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
}
