package config

// ProviderType identifies an embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// DriveMode selects the remote store backend.
type DriveMode string

const (
	// DriveGoogle files documents into Google Drive.
	DriveGoogle DriveMode = "google"
	// DriveMemory keeps everything in-process; useful for dry runs.
	DriveMemory DriveMode = "memory"
)

// Config is the top-level bibliosort configuration, corresponding to
// .bibliosort.yml.
type Config struct {
	EmbeddingProvider   ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel      string       `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDimensions int          `yaml:"embedding_dimensions" koanf:"embedding_dimensions"`
	OllamaBaseURL       string       `yaml:"ollama_base_url,omitempty" koanf:"ollama_base_url"`

	Extractor   string `yaml:"extractor" koanf:"extractor"`
	CatalogPath string `yaml:"catalog_path" koanf:"catalog_path"`
	LedgerPath  string `yaml:"ledger_path" koanf:"ledger_path"`
	AuditDB     string `yaml:"audit_db" koanf:"audit_db"`

	Drive  DriveConfig  `yaml:"drive" koanf:"drive"`
	Server ServerConfig `yaml:"server" koanf:"server"`
}

// DriveConfig holds remote-store settings.
type DriveConfig struct {
	Mode         DriveMode `yaml:"mode" koanf:"mode"`
	ClientID     string    `yaml:"client_id" koanf:"client_id"`
	ClientSecret string    `yaml:"client_secret" koanf:"client_secret"`
	TokenFile    string    `yaml:"token_file" koanf:"token_file"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
