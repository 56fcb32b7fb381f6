package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BackendConfig holds connection details for the document backend API.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SearchConfig configures search requests and result presentation.
type SearchConfig struct {
	TopK     int `yaml:"top_k"`
	Probes   int `yaml:"probes"`
	PageSize int `yaml:"page_size"`
}

// ChatConfig configures the chat panel.
type ChatConfig struct {
	MaxContextDocs int      `yaml:"max_context_docs"`
	DocChoices     []int    `yaml:"doc_choices,omitempty"`
	Greeting       string   `yaml:"greeting,omitempty"`
	StarterPrompts []string `yaml:"starter_prompts,omitempty"`
}

// CategoryRule maps a named filter category to the keywords that select it.
// A row belongs to the category when its category or doc type contains any
// keyword, case-insensitively. The fallback bucket is computed, never listed.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// StorageConfig locates the client-local SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Backend     BackendConfig  `yaml:"backend"`
	Search      SearchConfig   `yaml:"search"`
	Chat        ChatConfig     `yaml:"chat"`
	Categories  []CategoryRule `yaml:"categories"`
	Suggestions []string       `yaml:"suggestions,omitempty"`
	Storage     StorageConfig  `yaml:"storage"`
	Logging     LoggingConfig  `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
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

// LoadDefault tries ./config.yaml first, then ~/.config/docfind/config.yaml.
// If neither exists, it writes defaults to ~/.config/docfind/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
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
	return filepath.Join(home, ".config", "docfind", "config.yaml"), nil
}

// DefaultStoragePath returns the default SQLite database location.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docfind", "docfind.db"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Backend: BackendConfig{BaseURL: "http://localhost:8000", TimeoutSecs: 60},
		Search:  SearchConfig{TopK: 50, Probes: 10, PageSize: 10},
		Chat: ChatConfig{
			MaxContextDocs: 15,
			DocChoices:     []int{5, 10, 15, 20, 30, 50},
			Greeting:       "Hello! I am your document assistant. Ask me about drawings, specifications, procedures or anything else in the project documents.",
			StarterPrompts: []string{
				"What information do you have about architectural drawings?",
				"Give me a summary of the project documents",
				"Are there technical specifications available?",
				"What document types are available?",
			},
		},
		Categories: []CategoryRule{
			{Name: "planos", Keywords: []string{"plan", "drawing"}},
			{Name: "contratos", Keywords: []string{"contract"}},
			{Name: "reportes", Keywords: []string{"report"}},
		},
		Suggestions: []string{
			"structural drawings",
			"technical specifications",
			"contracts",
			"progress reports",
			"budgets",
			"RFI",
			"RFQ",
			"submittals",
			"change orders",
			"daily reports",
		},
		Logging: LoggingConfig{Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.TimeoutSecs == 0 {
		cfg.Backend.TimeoutSecs = 60
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 10
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 50
	}
	if cfg.Chat.MaxContextDocs == 0 {
		cfg.Chat.MaxContextDocs = 15
	}
	if len(cfg.Chat.DocChoices) == 0 {
		cfg.Chat.DocChoices = []int{5, 10, 15, 20, 30, 50}
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultConfig().Categories
	}
	if len(cfg.Suggestions) == 0 {
		cfg.Suggestions = defaultConfig().Suggestions
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
