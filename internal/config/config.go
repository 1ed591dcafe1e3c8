package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"recall/internal/chunker"
	"recall/internal/engine"
	"recall/internal/guard"
)

// ChunkingConfig configures how documents are split into windows.
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// RetrievalConfig configures ranking output.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// GuardConfig configures query screening.
type GuardConfig struct {
	MaxQueryLength int `yaml:"max_query_length"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Guard     GuardConfig     `yaml:"guard"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
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

// LoadDefault tries ./config.yaml first, then ~/.config/recall/config.yaml.
// If neither exists, it writes defaults to ~/.config/recall/config.yaml and returns them.
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
	return filepath.Join(home, ".config", "recall", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Chunking:  ChunkingConfig{ChunkSize: chunker.DefaultChunkSize, Overlap: chunker.DefaultOverlap},
		Retrieval: RetrievalConfig{TopK: engine.DefaultTopK},
		Guard:     GuardConfig{MaxQueryLength: guard.DefaultMaxQueryLen},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = chunker.DefaultChunkSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = chunker.DefaultOverlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = engine.DefaultTopK
	}
	if cfg.Guard.MaxQueryLength == 0 {
		cfg.Guard.MaxQueryLength = guard.DefaultMaxQueryLen
	}
}
