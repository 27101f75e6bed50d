package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/akhelifi/bibliosort/internal/audit"
	"github.com/akhelifi/bibliosort/internal/catalog"
	"github.com/akhelifi/bibliosort/internal/classifier"
	"github.com/akhelifi/bibliosort/internal/config"
	"github.com/akhelifi/bibliosort/internal/db"
	"github.com/akhelifi/bibliosort/internal/drive"
	"github.com/akhelifi/bibliosort/internal/embeddings"
	"github.com/akhelifi/bibliosort/internal/extract"
	"github.com/akhelifi/bibliosort/internal/feedback"
	"github.com/akhelifi/bibliosort/internal/filer"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `bibliosort init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.EmbeddingDimensions, cfg.OllamaBaseURL), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	}
}

// createStoreFromConfig creates the remote FolderStore based on config.
func createStoreFromConfig(ctx context.Context, cfg *config.Config) (drive.FolderStore, error) {
	switch cfg.Drive.Mode {
	case config.DriveMemory:
		fmt.Fprintln(os.Stderr, "Using in-memory store: nothing will reach Google Drive.")
		return drive.NewMemoryStore(), nil
	default:
		if cfg.Drive.ClientID == "" || cfg.Drive.ClientSecret == "" {
			return nil, fmt.Errorf("drive client_id and client_secret are required (run `bibliosort init`)")
		}
		hc, err := drive.NewAuthorizedClient(ctx, cfg.Drive.ClientID, cfg.Drive.ClientSecret, cfg.Drive.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("authorizing with Google Drive: %w", err)
		}
		return drive.NewGoogleStore(hc), nil
	}
}

// loadCatalogFromConfig loads the catalog file, falling back to the
// built-in catalog when the file does not exist.
func loadCatalogFromConfig(cfg *config.Config) (*catalog.Catalog, error) {
	if _, err := os.Stat(cfg.CatalogPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Catalog %s not found; using the built-in catalog.\n", cfg.CatalogPath)
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

// buildService assembles the classify-and-file service from config. The
// returned cleanup closes the audit database.
func buildService(ctx context.Context, cfg *config.Config) (*filer.Service, *audit.Store, func(), error) {
	cat, err := loadCatalogFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	cls, err := classifier.New(ctx, cat, embedder)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := createStoreFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {}
	var events *audit.Store
	if cfg.AuditDB != "" {
		database, err := db.Open(cfg.AuditDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening audit database: %w", err)
		}
		events = audit.NewStore(database)
		cleanup = func() { database.Close() }
	}

	extractor, err := extract.ForFormat(cfg.Extractor)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	svc := filer.NewService(
		extractor,
		cls,
		feedback.NewLedger(cfg.LedgerPath),
		events,
		drive.NewResolver(store),
		store,
	)
	return svc, events, cleanup, nil
}
