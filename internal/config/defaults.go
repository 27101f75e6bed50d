package config

// defaultModels maps each provider to its default embedding model.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// DefaultModel returns the default embedding model for a provider.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingProvider:   ProviderOpenAI,
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 768,
		Extractor:           "pdftotext",
		CatalogPath:         "catalog.yml",
		LedgerPath:          "feedback.csv",
		AuditDB:             ".bibliosort/audit.db",
		Drive: DriveConfig{
			Mode:      DriveGoogle,
			TokenFile: ".bibliosort/token.json",
		},
		Server: ServerConfig{
			Port: 8730,
		},
	}
}
