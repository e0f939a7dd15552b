package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the assessrec configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	LLM        LLMConfig        `yaml:"llm"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Cache      CacheConfig      `yaml:"cache"`
	Recommend  RecommendConfig  `yaml:"recommend"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Empty list disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig points to the assessment catalog file (.csv or .parquet).
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// NormalizerConfig holds URL inlining settings.
type NormalizerConfig struct {
	FetchTimeoutSec int    `yaml:"fetch_timeout_sec"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
	UserAgent       string `yaml:"user_agent"`
}

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig holds constraint extraction model settings.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // gemini | openai
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"` // openai only
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider            string `yaml:"provider"` // metrics label
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	Model               string `yaml:"model"`
	Dimensions          int    `yaml:"dimensions"`
	MaxBatchSize        int    `yaml:"max_batch_size"`
	DocumentInstruction string `yaml:"document_instruction"`
	QueryInstruction    string `yaml:"query_instruction"`
}

// CacheConfig holds the embedding cache store settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLHours         int      `yaml:"ttl_hours"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RecommendConfig holds result-size limits.
type RecommendConfig struct {
	DefaultMaxResults int `yaml:"default_max_results"`
	MaxResultsCeiling int `yaml:"max_results_ceiling"` // 0 = no upper bound
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// extraction + embeddings + URL fetches can take a while
		c.HTTP.WriteTimeoutSec = 90
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Normalizer.FetchTimeoutSec <= 0 {
		c.Normalizer.FetchTimeoutSec = 10
	}
	if c.Normalizer.MaxBodyBytes <= 0 {
		c.Normalizer.MaxBodyBytes = 2 << 20
	}
	if c.Normalizer.UserAgent == "" {
		c.Normalizer.UserAgent = "assessrec/1.0"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 30
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.MaxBatchSize <= 0 {
		c.Embedding.MaxBatchSize = 256
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 30
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Recommend.DefaultMaxResults <= 0 {
		c.Recommend.DefaultMaxResults = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("catalog.path is required")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must be >= 0, got %d", c.Embedding.Dimensions)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	if c.Recommend.MaxResultsCeiling > 0 && c.Recommend.DefaultMaxResults > c.Recommend.MaxResultsCeiling {
		return fmt.Errorf(
			"recommend.default_max_results (%d) exceeds recommend.max_results_ceiling (%d)",
			c.Recommend.DefaultMaxResults, c.Recommend.MaxResultsCeiling,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
