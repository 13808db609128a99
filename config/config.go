package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the RAG pipeline.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Store     StoreConfig     `yaml:"store"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatasetConfig holds sensor dataset configuration.
type DatasetConfig struct {
	Path     string   `yaml:"path"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig holds generative model configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`    // "openai", "ollama", "mock"
	Model       string  `yaml:"model"`       // e.g., "gpt-4o-mini"
	APIKeyEnv   string  `yaml:"api_key_env"` // Environment variable for API key
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"` // 0 = provider default
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK      int           `yaml:"top_k"`
	CacheSize int           `yaml:"cache_size"` // 0 = query cache disabled
	CacheTTL  time.Duration `yaml:"cache_ttl"`  // 0 = entries never expire
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	Backend        string `yaml:"backend"`          // "bolt", "postgres", "memory"
	PostgresDSNEnv string `yaml:"postgres_dsn_env"` // Environment variable for DSN
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:     "data/sensores_iot.json",
			Includes: []string{"**/*.json"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/backup/**"},
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.7,
		},
		Retrieve: RetrieveConfig{
			TopK:      3,
			CacheSize: 100,
			CacheTTL:  5 * time.Minute,
		},
		Store: StoreConfig{
			Backend:        "bolt",
			PostgresDSNEnv: "DATABASE_URL",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ragiot.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try ragiot.yaml in the directory
	path := filepath.Join(dir, "ragiot.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .ragiot/config.yaml
	path = filepath.Join(dir, ".ragiot", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".ragiot", "index.db")
}

// EnsureStateDir ensures the .ragiot directory exists.
func EnsureStateDir(dir string) error {
	stateDir := filepath.Join(dir, ".ragiot")
	return os.MkdirAll(stateDir, 0755)
}
