package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Tools       ToolsConfig       `yaml:"tools"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Watcher     WatcherConfig     `yaml:"watcher"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type CatalogConfig struct {
	Path       string   `yaml:"path"`
	Extensions []string `yaml:"extensions"`
}

// ToolConfig describes one external analysis executable. Args are placed
// before the stage-specific arguments, so `python3 transcribe.py <raw>` is
// Command "python3" with Args ["transcribe.py"].
type ToolConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Timeout time.Duration `yaml:"timeout"`
}

// ExportConfig is a ToolConfig gated on the presence of ConfigFile.
type ExportConfig struct {
	ToolConfig `yaml:",inline"`
	ConfigFile string `yaml:"config_file"`
}

type ToolsConfig struct {
	Transcribe ToolConfig   `yaml:"transcribe"`
	Summarize  ToolConfig   `yaml:"summarize"`
	Export     ExportConfig `yaml:"export"`
}

type GeminiConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type WatcherConfig struct {
	Inbox       string        `yaml:"inbox"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate checks required fields and fills defaults for optional ones.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Catalog,
		validation.Field(&c.Catalog.Path, validation.Required),
	); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := validation.ValidateStruct(&c.Tools.Transcribe,
		validation.Field(&c.Tools.Transcribe.Command, validation.Required),
		validation.Field(&c.Tools.Transcribe.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("tools.transcribe: %w", err)
	}
	if err := validation.ValidateStruct(&c.Tools.Summarize,
		validation.Field(&c.Tools.Summarize.Command, validation.When(!c.Gemini.Enabled, validation.Required)),
		validation.Field(&c.Tools.Summarize.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("tools.summarize: %w", err)
	}
	if err := validation.ValidateStruct(&c.Tools.Export,
		validation.Field(&c.Tools.Export.Command, validation.When(c.Tools.Export.ConfigFile != "", validation.Required)),
	); err != nil {
		return fmt.Errorf("tools.export: %w", err)
	}
	if err := validation.ValidateStruct(&c.Gemini,
		validation.Field(&c.Gemini.APIKeys, validation.When(c.Gemini.Enabled, validation.Required)),
	); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("", "debug", "info", "warn", "error")),
		validation.Field(&c.Logging.Format, validation.In("", "console", "json")),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validation.ValidateStruct(&c.Performance,
		validation.Field(&c.Performance.MaxConcurrent, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	if len(c.Catalog.Extensions) == 0 {
		c.Catalog.Extensions = []string{".webm", ".wav", ".mp3", ".m4a", ".ogg"}
	}
	if c.Watcher.Inbox == "" {
		c.Watcher.Inbox = "inbox"
	}
	if c.Watcher.SettleDelay == 0 {
		c.Watcher.SettleDelay = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}

// Default returns a configuration that drives the bundled Python helper
// scripts from the current directory.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "entries",
		},
		Tools: ToolsConfig{
			Transcribe: ToolConfig{
				Command: "python3",
				Args:    []string{"local-ai/transcribe.py"},
			},
			Summarize: ToolConfig{
				Command: "python3",
				Args:    []string{"local-ai/summarize.py"},
			},
			Export: ExportConfig{
				ToolConfig: ToolConfig{
					Command: "python3",
					Args:    []string{"obsidian-sync/markdown_export.py"},
				},
				ConfigFile: "obsidian-sync/config.json",
			},
		},
	}
}
