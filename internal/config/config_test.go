package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		Catalog:   CatalogConfig{Path: "data/catalog.csv"},
		LLM:       LLMConfig{Model: "gemini-2.0-flash"},
		Embedding: EmbeddingConfig{Model: "text-embedding-3-small"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.HTTP.Port)
	}
	if cfg.Normalizer.FetchTimeoutSec != 10 {
		t.Errorf("fetch timeout = %d, want 10", cfg.Normalizer.FetchTimeoutSec)
	}
	if cfg.Normalizer.MaxBodyBytes != 2<<20 {
		t.Errorf("max body = %d, want 2 MiB", cfg.Normalizer.MaxBodyBytes)
	}
	if cfg.LLM.Provider != ProviderGemini || cfg.LLM.TimeoutSec != 30 {
		t.Errorf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.Embedding.MaxBatchSize != 256 {
		t.Errorf("max batch = %d, want 256", cfg.Embedding.MaxBatchSize)
	}
	if cfg.Cache.Enabled {
		t.Error("cache must be disabled by default")
	}
	if cfg.Recommend.DefaultMaxResults != 10 || cfg.Recommend.MaxResultsCeiling != 0 {
		t.Errorf("recommend defaults = %+v", cfg.Recommend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"no catalog", func(c *Config) { c.Catalog.Path = " " }, "catalog.path"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, "llm.provider"},
		{"no llm model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"no embedding model", func(c *Config) { c.Embedding.Model = "" }, "embedding.model"},
		{"cache without addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"default above ceiling", func(c *Config) {
			c.Recommend.DefaultMaxResults = 50
			c.Recommend.MaxResultsCeiling = 20
		}, "max_results_ceiling"},
		{"no ceiling", func(c *Config) {
			c.Recommend.DefaultMaxResults = 50
			c.Recommend.MaxResultsCeiling = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("ASSESSREC_TEST_KEY", "secret")

	cfg, err := Parse([]byte(`
catalog:
  path: ${ASSESSREC_TEST_CATALOG:-data/catalog.parquet}
llm:
  provider: openai
  api_key: ${ASSESSREC_TEST_KEY}
  model: gpt-4o-mini
embedding:
  model: text-embedding-3-small
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Catalog.Path != "data/catalog.parquet" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.LLM.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("llm:\n  model: x\n")); err == nil {
		t.Fatal("expected validation error for missing catalog")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Catalog.Path == "" {
		t.Error("catalog path is empty")
	}
}
