// Package config loads wordiff settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, WORDIFF_*
// environment variables, then command line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dacharyc/wordiff"
	"github.com/dacharyc/wordiff/internal/transform"
	"github.com/dacharyc/wordiff/render"
)

// Config is the full application configuration.
type Config struct {
	Version  string             `yaml:"version"`
	Provider ProviderConfig     `yaml:"provider"`
	Diff     DiffConfig         `yaml:"diff"`
	Render   RenderConfig       `yaml:"render"`
	History  HistoryConfig      `yaml:"history"`
	Log      LogConfig          `yaml:"log"`
	Defaults transform.Settings `yaml:"defaults"`
}

// ProviderConfig selects the text-transformation backend.
type ProviderConfig struct {
	Name      string        `yaml:"name"` // http, anthropic or openai
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// DiffConfig tunes the comparison.
type DiffConfig struct {
	Lookahead   int    `yaml:"lookahead"`
	EmptyInput  string `yaml:"empty_input"` // skip or align
	ShowRemoved bool   `yaml:"show_removed"`
	CacheSize   int    `yaml:"cache_size"`
}

// RenderConfig selects the output format.
type RenderConfig struct {
	Format         string `yaml:"format"` // auto, plain, markdown, html, ansi, json
	HighlightColor string `yaml:"highlight_color"`
}

// HistoryConfig controls the local history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Limit   int    `yaml:"limit"` // default number of records listed
}

// LogConfig controls logging.
type LogConfig struct {
	Verbosity int    `yaml:"verbosity"` // 0 quiet, 1 errors/warnings, 2 info, 3+ debug
	File      string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Provider: ProviderConfig{
			Name:    transform.ProviderHTTP,
			BaseURL: "http://localhost:5000",
			Timeout: 60 * time.Second,
		},
		Diff: DiffConfig{
			Lookahead:  wordiff.DefaultLookahead,
			EmptyInput: wordiff.SkipEmpty.String(),
			CacheSize:  16,
		},
		Render: RenderConfig{
			Format:         "auto",
			HighlightColor: render.DefaultHighlightColor,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir(), "history.db"),
			Limit:   20,
		},
		Log: LogConfig{
			Verbosity: 1,
		},
		Defaults: transform.DefaultSettings(),
	}
}

// dataDir is where wordiff keeps its files.
func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wordiff")
	}
	return ".wordiff"
}

// DefaultPath is the config file read when none is named.
func DefaultPath() string {
	return filepath.Join(dataDir(), "config.yml")
}

// Load builds the configuration from defaults, the file at path and the
// environment. A missing file is not an error when path is the default.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode overlays YAML onto cfg, rejecting unknown keys.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// envVars maps environment variables to the field they set.
var envVars = map[string]func(c *Config, v string) error{
	"WORDIFF_PROVIDER":        func(c *Config, v string) error { c.Provider.Name = v; return nil },
	"WORDIFF_BASE_URL":        func(c *Config, v string) error { c.Provider.BaseURL = v; return nil },
	"WORDIFF_API_KEY":         func(c *Config, v string) error { c.Provider.APIKey = v; return nil },
	"WORDIFF_MODEL":           func(c *Config, v string) error { c.Provider.Model = v; return nil },
	"WORDIFF_HISTORY_PATH":    func(c *Config, v string) error { c.History.Path = v; return nil },
	"WORDIFF_FORMAT":          func(c *Config, v string) error { c.Render.Format = v; return nil },
	"WORDIFF_LOG_FILE":        func(c *Config, v string) error { c.Log.File = v; return nil },
	"WORDIFF_TIMEOUT":         func(c *Config, v string) error { return setDuration(&c.Provider.Timeout, v) },
	"WORDIFF_LOOKAHEAD":       func(c *Config, v string) error { return setInt(&c.Diff.Lookahead, v) },
	"WORDIFF_LOG_VERBOSITY":   func(c *Config, v string) error { return setInt(&c.Log.Verbosity, v) },
	"WORDIFF_HISTORY_ENABLED": func(c *Config, v string) error { return setBool(&c.History.Enabled, v) },
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for name, set := range envVars {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider.Name) {
	case transform.ProviderHTTP:
		if c.Provider.BaseURL == "" {
			return errors.New("provider.base_url is required for the http provider")
		}
	case transform.ProviderAnthropic, transform.ProviderOpenAI:
	default:
		return fmt.Errorf("provider.name: %w: %q", transform.ErrUnknownProvider, c.Provider.Name)
	}
	if c.Provider.Timeout < 0 {
		return errors.New("provider.timeout must not be negative")
	}
	if c.Diff.Lookahead < 0 {
		return errors.New("diff.lookahead must not be negative")
	}
	if _, err := wordiff.ParseEmptyPolicy(c.Diff.EmptyInput); err != nil {
		return fmt.Errorf("diff.empty_input: %w", err)
	}
	if c.Diff.CacheSize < 0 {
		return errors.New("diff.cache_size must not be negative")
	}
	if c.Render.Format != "auto" {
		if _, err := render.ByName(c.Render.Format, c.RenderOptions()); err != nil {
			return fmt.Errorf("render.format: %w", err)
		}
	}
	if _, err := render.NewHTML(c.RenderOptions()); err != nil {
		return fmt.Errorf("render.highlight_color: %w", err)
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path is required when history is enabled")
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

// TransformConfig converts the provider section for transform.New.
func (c *Config) TransformConfig() transform.Config {
	return transform.Config{
		Name:      c.Provider.Name,
		BaseURL:   c.Provider.BaseURL,
		APIKey:    c.Provider.APIKey,
		Model:     c.Provider.Model,
		Timeout:   c.Provider.Timeout,
		MaxTokens: c.Provider.MaxTokens,
	}
}

// Comparer builds the comparison layer described by the diff section.
func (c *Config) Comparer() *wordiff.Comparer {
	policy, _ := wordiff.ParseEmptyPolicy(c.Diff.EmptyInput)
	cmp := &wordiff.Comparer{
		EmptyInput: policy,
		Options:    []wordiff.Option{wordiff.WithLookahead(c.Diff.Lookahead)},
	}
	if c.Diff.CacheSize > 0 {
		cmp.Cache = wordiff.NewCache(c.Diff.CacheSize, nil)
	}
	return cmp
}

// RenderOptions returns the options shared by every renderer.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		ShowRemoved:    c.Diff.ShowRemoved,
		HighlightColor: c.Render.HighlightColor,
	}
}
