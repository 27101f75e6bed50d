package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := DefaultConfig()
	if cfg.EmbeddingProvider != def.EmbeddingProvider {
		t.Errorf("EmbeddingProvider = %q, want %q", cfg.EmbeddingProvider, def.EmbeddingProvider)
	}
	if cfg.LedgerPath != def.LedgerPath {
		t.Errorf("LedgerPath = %q, want %q", cfg.LedgerPath, def.LedgerPath)
	}
	if cfg.Server.Port != def.Server.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, def.Server.Port)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
embedding_provider: ollama
embedding_model: nomic-embed-text
ledger_path: /data/feedback.csv
drive:
  mode: memory
server:
  port: 9001
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.EmbeddingProvider != ProviderOllama {
		t.Errorf("EmbeddingProvider = %q, want ollama", cfg.EmbeddingProvider)
	}
	if cfg.LedgerPath != "/data/feedback.csv" {
		t.Errorf("LedgerPath = %q", cfg.LedgerPath)
	}
	if cfg.Drive.Mode != DriveMemory {
		t.Errorf("Drive.Mode = %q, want memory", cfg.Drive.Mode)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}

	// Keys the file omits keep their defaults.
	if cfg.CatalogPath != DefaultConfig().CatalogPath {
		t.Errorf("CatalogPath = %q, want default", cfg.CatalogPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("ledger_path: from-file.csv\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("BIBLIOSORT_LEDGER_PATH", "from-env.csv")
	t.Setenv("BIBLIOSORT_DRIVE__MODE", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LedgerPath != "from-env.csv" {
		t.Errorf("LedgerPath = %q, env should win over file", cfg.LedgerPath)
	}
	if cfg.Drive.Mode != DriveMemory {
		t.Errorf("Drive.Mode = %q, want memory from env", cfg.Drive.Mode)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("ledger_path: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := DefaultConfig()
	cfg.EmbeddingProvider = ProviderOllama
	cfg.EmbeddingModel = "nomic-embed-text"
	cfg.Drive.Mode = DriveMemory
	cfg.Server.Port = 8123

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.EmbeddingProvider != cfg.EmbeddingProvider ||
		loaded.EmbeddingModel != cfg.EmbeddingModel ||
		loaded.Drive.Mode != cfg.Drive.Mode ||
		loaded.Server.Port != cfg.Server.Port {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"missing provider", func(c *Config) { c.EmbeddingProvider = "" }, "embedding_provider"},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "anthropic" }, "embedding_provider"},
		{"missing model", func(c *Config) { c.EmbeddingModel = "" }, "embedding_model"},
		{"missing catalog", func(c *Config) { c.CatalogPath = "" }, "catalog_path"},
		{"missing ledger", func(c *Config) { c.LedgerPath = "" }, "ledger_path"},
		{"bad drive mode", func(c *Config) { c.Drive.Mode = "dropbox" }, "drive mode"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel(ProviderOllama); got != "nomic-embed-text" {
		t.Errorf("DefaultModel(ollama) = %q", got)
	}
	if got := DefaultModel("bogus"); got != "text-embedding-3-small" {
		t.Errorf("DefaultModel(bogus) = %q", got)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("APIKeyEnvVar(openai) = %q", got)
	}
	if got := APIKeyEnvVar(ProviderOllama); got != "" {
		t.Errorf("APIKeyEnvVar(ollama) = %q, want empty", got)
	}
}
