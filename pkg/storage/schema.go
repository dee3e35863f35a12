package storage

import "github.com/blackcoderx/kurl/pkg/command"

// Config represents the user's configuration file.
type Config struct {
	CurlPath           string `json:"curl_path"`             // Explicit curl binary; empty means search PATH
	HistoryLimit       int    `json:"history_limit"`         // Max in-memory execution results kept
	RateLimitPerMinute int    `json:"rate_limit_per_minute"` // Max executions per minute; 0 disables
	Theme              string `json:"theme"`                 // UI theme name
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:       50,
		RateLimitPerMinute: 0,
		Theme:              "dark",
	}
}

// TemplatesDocument is the on-disk shape of templates.yaml.
type TemplatesDocument struct {
	Version   int                `yaml:"version"`
	Templates []command.Template `yaml:"templates,omitempty"`
}

// EnvironmentsDocument is the on-disk shape of environments.yaml.
type EnvironmentsDocument struct {
	Version      int                   `yaml:"version"`
	Environments []command.Environment `yaml:"environments,omitempty"`
}

// SchemaVersion is written into every document for forward migrations.
const SchemaVersion = 1
