package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "tubesum"
)

// ConfigDir returns the standard config directory for tubesum.
// Windows: %APPDATA%\tubesum\
// macOS/Linux: ~/.config/tubesum/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/tubesum/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// DataDir holds the retrieval index database and synthesized audio.
	DataDir string `yaml:"data_dir,omitempty"`

	// TranscriptLanguages is the ordered caption-language priority list.
	// The first language with an available caption track wins.
	TranscriptLanguages []string `yaml:"transcript_languages,omitempty"`

	// RetrievalTopK is the number of chunks retrieved per chat question.
	RetrievalTopK int `yaml:"retrieval_top_k,omitempty"`

	// Models maps a provider name to a model ID override.
	// Example YAML:
	//   models:
	//     openai: gpt-4o-mini
	//     anthropic: claude-3-opus-20240229
	Models map[string]string `yaml:"models,omitempty"`

	// Server configuration for `tubesum serve`
	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig holds HTTP server settings for `tubesum serve`
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty"`
}

// Model returns the configured model ID override for a provider, or "".
func (c *Config) Model(provider string) string {
	if c.Models == nil {
		return ""
	}
	return c.Models[provider]
}

// Languages returns the caption-language priority list, defaulted.
func (c *Config) Languages() []string {
	if len(c.TranscriptLanguages) > 0 {
		return c.TranscriptLanguages
	}
	return DefaultTranscriptLanguages()
}

// TopK returns the retrieval fan-out, defaulted.
func (c *Config) TopK() int {
	if c.RetrievalTopK > 0 {
		return c.RetrievalTopK
	}
	return 4
}

// DefaultTranscriptLanguages returns the built-in caption priority order.
func DefaultTranscriptLanguages() []string {
	return []string{"en", "tr", "de", "fr", "es"}
}

// DefaultDataDir returns the default directory for mutable state.
func DefaultDataDir() string {
	dir, err := ConfigDir()
	if err != nil {
		return "./tubesum-data"
	}
	return filepath.Join(dir, "data")
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DataDir:             DefaultDataDir(),
		TranscriptLanguages: DefaultTranscriptLanguages(),
		RetrievalTopK:       4,
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/tubesum/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	return cfg, nil
}

// expandPath expands the tilde (~) in the path to the user's home directory.
// It handles both forward and backward slashes to ensure cross-platform
// compatibility for configuration files.
func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}

// Save writes the config to ~/.config/tubesum/config.yml
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadOrDefault loads config if it exists, otherwise returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return cfg
}
