// Package config provides configuration types and defaults for venom.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/venom/internal/labeltext"
	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/storage"
	"github.com/zjrosen/venom/internal/tracing"
	"github.com/zjrosen/venom/internal/view"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration options for venom.
type Config struct {
	SavePath           string         `mapstructure:"save_path"`
	AutoReload         bool           `mapstructure:"auto_reload"`
	AutoReloadDebounce time.Duration  `mapstructure:"auto_reload_debounce"`
	Storage            StorageConfig  `mapstructure:"storage"`
	UI                 UIConfig       `mapstructure:"ui"`
	Labels             LabelsConfig   `mapstructure:"labels"`
	View               ViewConfig     `mapstructure:"view"`
	Theme              ThemeConfig    `mapstructure:"theme"`
	Tracing            tracing.Config `mapstructure:"tracing"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "json" (default) or "sqlite"
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	VimMode       bool   `mapstructure:"vim_mode"`       // Normal/Insert modes in the text buffer
	MarkdownStyle string `mapstructure:"markdown_style"` // glamour style for the notes pane
	ShowSummary   bool   `mapstructure:"show_summary"`   // Show the notes pane beside the table
}

// LabelsConfig controls the label editor text.
type LabelsConfig struct {
	ColorFormat string `mapstructure:"color_format"` // "name" (default) or "rgb"
}

// ViewConfig holds the remembered view state.
type ViewConfig struct {
	Policy string `mapstructure:"policy"` // "separate" (default), "show" or "hide"
}

// ThemeConfig overrides individual color tokens.
type ThemeConfig struct {
	// Colors maps tokens such as "priority.high" to a color.
	// Nested YAML and quoted dot notation are both accepted:
	//   colors:
	//     priority:
	//       high: "#FF5555"
	//     "row.selected": "#3B4252"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors with nested maps folded into dot keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// yaml can decode nested maps with interface keys
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// MarkdownStyles are the glamour styles accepted by ui.markdown_style.
var MarkdownStyles = []string{"dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}

// Policy returns the configured view policy, falling back to the default
// when the value is unknown.
func (c Config) Policy() view.Policy {
	p, err := view.ParsePolicy(c.View.Policy)
	if err != nil {
		return view.SeparateCompleted
	}
	return p
}

// LabelFormat returns the configured label color format.
func (c Config) LabelFormat() labeltext.Format {
	f, err := labeltext.ParseFormat(c.Labels.ColorFormat)
	if err != nil {
		return labeltext.FormatName
	}
	return f
}

// Validate checks the configuration. Empty values are valid and use
// defaults.
func Validate(c Config) error {
	switch c.Storage.Backend {
	case "", storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q",
			ErrInvalid, storage.BackendJSON, storage.BackendSQLite, c.Storage.Backend)
	}

	if c.Labels.ColorFormat != "" {
		if _, err := labeltext.ParseFormat(c.Labels.ColorFormat); err != nil {
			return fmt.Errorf("%w: labels.color_format: %w", ErrInvalid, err)
		}
	}

	if c.View.Policy != "" {
		if _, err := view.ParsePolicy(c.View.Policy); err != nil {
			return fmt.Errorf("%w: view.policy: %w", ErrInvalid, err)
		}
	}

	if c.UI.MarkdownStyle != "" && !validMarkdownStyle(c.UI.MarkdownStyle) {
		return fmt.Errorf("%w: ui.markdown_style %q is not a known style", ErrInvalid, c.UI.MarkdownStyle)
	}

	if c.AutoReloadDebounce < 0 {
		return fmt.Errorf("%w: auto_reload_debounce must not be negative, got %s", ErrInvalid, c.AutoReloadDebounce)
	}

	return ValidateTracing(c.Tracing)
}

func validMarkdownStyle(s string) bool {
	for _, m := range MarkdownStyles {
		if m == s {
			return true
		}
	}
	return false
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalid, t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", ErrInvalid, t.Exporter)
		}
	}

	// Path requirements only matter when spans are exported.
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("%w: tracing.file_path is required when exporter is \"file\"", ErrInvalid)
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("%w: tracing.otlp_endpoint is required when exporter is \"otlp\"", ErrInvalid)
		}
	}
	return nil
}

// Defaults returns a Config with default values. SavePath and the trace file
// are left empty; they are derived from the home directory at startup.
func Defaults() Config {
	return Config{
		AutoReload:         true,
		AutoReloadDebounce: 300 * time.Millisecond,
		Storage: StorageConfig{
			Backend: storage.BackendJSON,
		},
		UI: UIConfig{
			VimMode:       false,
			MarkdownStyle: "dark",
			ShowSummary:   true,
		},
		Labels: LabelsConfig{
			ColorFormat: labeltext.FormatName.String(),
		},
		View: ViewConfig{
			Policy: view.SeparateCompleted.String(),
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# venom configuration

# Where tasks are saved (default: ~/.venom/todo.json)
# save_path: ~/.venom/todo.json

# Storage backend: "json" (default) or "sqlite"
storage:
  backend: json

# Reload when the save file changes on disk
auto_reload: true
auto_reload_debounce: 300ms

# UI settings
ui:
  vim_mode: false        # Normal/Insert modes in the editor; esc leaves Insert first
  markdown_style: dark   # Notes pane style: dark, light, notty, ascii, dracula, pink, tokyo-night
  show_summary: true     # Show the selected task's notes beside the table

# Label editor
labels:
  # How colors are written in the label editor:
  #   name - one token, e.g. "WORK Red Work" or "WORK #ff0000 Work"
  #   rgb  - three numbers, e.g. "WORK 255 0 0 Work"
  color_format: name

# Remembered view state (updated when you press c)
view:
  policy: separate       # separate, show or hide

# Theme overrides
# theme:
#   colors:
#     priority.high: "#FF5555"
#     priority.medium: "#F1FA8C"
#     priority.low: "#8BE9FD"
#     row.selected: "#44475A"
#     row.done: "#6272A4"

# Tracing of commands and saves
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/venom/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
