package advice

import (
	"context"
	"fmt"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/domain/services"
	"atelier/internal/service/advice/providers/anthropic"
	"atelier/internal/service/advice/providers/gemini"
	"atelier/internal/service/advice/providers/lorem"
)

// ProviderFactory builds the configured advice provider
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{config: cfg}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "gemini" - Google Gemini via the Gen AI SDK
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - canned lorem ipsum replies, no API key required
func (f *ProviderFactory) GetProvider(ctx context.Context, providerName string) (services.AdviceProvider, error) {
	switch providerName {
	case "gemini":
		if f.config.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set: %w", domain.ErrUnavailable)
		}
		return gemini.NewProvider(ctx, f.config.GeminiAPIKey)

	case "anthropic":
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set: %w", domain.ErrUnavailable)
		}
		return anthropic.NewProvider(f.config.AnthropicAPIKey)

	case "lorem":
		return lorem.NewProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported advice provider %q: %w", providerName, domain.ErrValidation)
	}
}
