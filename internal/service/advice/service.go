// Package advice implements the design-advice proxy in front of a hosted
// text-generation model.
package advice

import (
	"context"
	"log/slog"
	"strings"

	"atelier/internal/domain/services"
)

const (
	// Persona is the fixed system instruction sent with every prompt.
	Persona = "You are a world-class interior designer specializing in curtains, blinds, and furniture covers (sofa covers, chair covers). Provide brief, elegant, and practical advice on fabric choices, color coordination, and styles. Keep your tone sophisticated and helpful. Limit responses to 3 sentences max."

	// UnavailableMessage is returned whenever the provider call fails.
	UnavailableMessage = "Our design AI is currently taking a break. Please try again later."

	// EmptyReplyMessage is returned when the provider answers with no text.
	EmptyReplyMessage = "I couldn't generate advice at the moment. Please try again."

	defaultMaxTokens = 300
)

type service struct {
	provider    services.AdviceProvider
	providerErr error
	model       string
	logger      *slog.Logger
}

// NewService wraps provider. When providerErr is non-nil (the provider could
// not be built, usually a missing API key) every call returns
// UnavailableMessage and logs the cause.
func NewService(provider services.AdviceProvider, providerErr error, model string, logger *slog.Logger) services.AdviceService {
	return &service{
		provider:    provider,
		providerErr: providerErr,
		model:       model,
		logger:      logger,
	}
}

func (s *service) GetDesignAdvice(ctx context.Context, prompt string) string {
	if s.provider == nil {
		s.logger.Error("design advice unavailable", "error", s.providerErr)
		return UnavailableMessage
	}

	text, err := s.provider.Generate(ctx, &services.GenerateRequest{
		Model:     s.model,
		System:    Persona,
		Prompt:    prompt,
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		s.logger.Error("design advice request failed",
			"provider", s.provider.Name(),
			"model", s.model,
			"error", err,
		)
		return UnavailableMessage
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("design advice came back empty",
			"provider", s.provider.Name(),
			"model", s.model,
		)
		return EmptyReplyMessage
	}
	return text
}
