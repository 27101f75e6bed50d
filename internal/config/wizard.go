package config

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/akhelifi/bibliosort/internal/catalog"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It saves the config to the given path and writes the
// default catalog next to it if no catalog file exists yet.
func RunWizard(cfgPath string) (*Config, error) {
	fmt.Println("Welcome to bibliosort! Let's configure your library.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{string(ProviderOpenAI), string(ProviderOllama)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.EmbeddingProvider = ProviderType(providerStr)

	// 2. Embedding model, defaulting per provider.
	modelPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: DefaultModel(cfg.EmbeddingProvider),
	}
	if cfg.EmbeddingModel, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model prompt: %w", err)
	}

	// 3. Feedback ledger location.
	ledgerPrompt := promptui.Prompt{
		Label:   "Feedback ledger CSV path",
		Default: cfg.LedgerPath,
	}
	if cfg.LedgerPath, err = ledgerPrompt.Run(); err != nil {
		return nil, fmt.Errorf("ledger prompt: %w", err)
	}

	// 4. Remote store.
	modePrompt := promptui.Select{
		Label: "Remote store",
		Items: []string{string(DriveGoogle), string(DriveMemory)},
	}
	_, modeStr, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}
	cfg.Drive.Mode = DriveMode(modeStr)

	if cfg.Drive.Mode == DriveGoogle {
		idPrompt := promptui.Prompt{Label: "Google OAuth client ID"}
		if cfg.Drive.ClientID, err = idPrompt.Run(); err != nil {
			return nil, fmt.Errorf("client ID prompt: %w", err)
		}
		secretPrompt := promptui.Prompt{Label: "Google OAuth client secret", Mask: '*'}
		if cfg.Drive.ClientSecret, err = secretPrompt.Run(); err != nil {
			return nil, fmt.Errorf("client secret prompt: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(cfgPath); err != nil {
		return nil, err
	}
	fmt.Printf("\nWrote %s\n", cfgPath)

	// Ship the built-in catalog as a starting point.
	if _, err := os.Stat(cfg.CatalogPath); os.IsNotExist(err) {
		if err := catalog.Default().Save(cfg.CatalogPath); err != nil {
			return nil, err
		}
		fmt.Printf("Wrote default catalog to %s. Edit it to match your library.\n", cfg.CatalogPath)
	}

	return cfg, nil
}
