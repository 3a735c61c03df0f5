package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OllamaConfig holds configuration for the local Ollama embedder. The
// server address comes from the environment (OLLAMA_HOST).
type OllamaConfig struct {
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedding capability. Type is
// one of auto, ollama, openai or keyword; auto probes the providers in
// order and keyword skips embedding entirely.
type EmbedderConfig struct {
	Type   string        `yaml:"type"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
	Ollama *OllamaConfig `yaml:"ollama,omitempty"`
}

// SummaryConfig tunes sentence selection. Budget is a pointer so an
// explicit 0 in the file is distinguishable from an omitted field.
type SummaryConfig struct {
	Budget           *int `yaml:"budget"`
	MinSentenceChars int  `yaml:"min_sentence_chars"`
}

// TagsConfig tunes tag extraction.
type TagsConfig struct {
	Top int `yaml:"top"`
}

// SearchConfig tunes interactive queries in explore mode.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder EmbedderConfig `yaml:"embedder"`
	Summary  SummaryConfig  `yaml:"summary"`
	Tags     TagsConfig     `yaml:"tags"`
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./gist.yaml first, then ~/.config/gist/config.yaml.
// If neither exists, it writes defaults to ~/.config/gist/config.yaml and
// returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "gist.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gist", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{Embedder: EmbedderConfig{Type: "auto"}}
	applyConfigDefaults(cfg)
	return cfg
}

// applyConfigDefaults fills every zero value. Both embedder sections are
// materialized even when the file omits them, since auto mode may try
// either provider.
func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "auto"
	}
	if cfg.Embedder.OpenAI == nil {
		cfg.Embedder.OpenAI = &OpenAIConfig{}
	}
	if cfg.Embedder.OpenAI.BaseURL == "" {
		cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.OpenAI.APIKeyEnv == "" {
		cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.OpenAI.Model == "" {
		cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
		cfg.Embedder.OpenAI.TimeoutSecs = 30
	}
	if cfg.Embedder.Ollama == nil {
		cfg.Embedder.Ollama = &OllamaConfig{}
	}
	if cfg.Embedder.Ollama.Model == "" {
		cfg.Embedder.Ollama.Model = "nomic-embed-text"
	}
	if cfg.Embedder.Ollama.TimeoutSecs == 0 {
		cfg.Embedder.Ollama.TimeoutSecs = 30
	}
	if cfg.Summary.Budget == nil {
		budget := 450
		cfg.Summary.Budget = &budget
	}
	if cfg.Summary.MinSentenceChars == 0 {
		cfg.Summary.MinSentenceChars = 20
	}
	if cfg.Tags.Top == 0 {
		cfg.Tags.Top = 8
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
