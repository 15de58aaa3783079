// Package gemini adapts the Google Gen AI SDK to services.AdviceProvider.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"atelier/internal/domain/services"
)

// Provider calls the Gemini API
type Provider struct {
	client *genai.Client
}

// NewProvider creates a Gemini provider with the given API key
func NewProvider(ctx context.Context, apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{client: client}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "gemini"
}

// Generate sends a single user turn with req.System as the system instruction
func (p *Provider) Generate(ctx context.Context, req *services.GenerateRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
