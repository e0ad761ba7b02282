package providers

import (
	"fmt"

	"foodassistant/internal/config"
	"foodassistant/internal/models"
)

type initializer func(cfg config.InferenceConfig) (Provider, error)

var initializers = map[string]initializer{
	config.ProviderNVIDIA: initializeOpenAICompatible,
	config.ProviderOpenAI: initializeOpenAICompatible,
	config.ProviderAzure:  initializeAzure,
}

// New returns the provider selected by cfg. When the provider has no credentials it
// returns models.ErrInferenceNotConfigured and callers run on the local fallback.
func New(cfg config.InferenceConfig) (Provider, error) {
	initFn, exists := initializers[cfg.Provider]
	if !exists {
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider)
	}
	if !cfg.Configured() {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, models.ErrInferenceNotConfigured)
	}
	return initFn(cfg)
}

func initializeOpenAICompatible(cfg config.InferenceConfig) (Provider, error) {
	baseURL := cfg.BaseURL
	if cfg.Provider == config.ProviderOpenAI && baseURL == config.Default().Inference.BaseURL {
		baseURL = ""
	}
	return NewOpenAICompatibleProvider(cfg.Provider, cfg.APIKey, baseURL, cfg.Model)
}

func initializeAzure(cfg config.InferenceConfig) (Provider, error) {
	return NewAzureOpenAIProvider(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureDeployment)
}
