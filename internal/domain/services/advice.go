package services

import "context"

// AdviceService answers interior-design questions. It never returns an error:
// provider failures become a fixed apology message.
type AdviceService interface {
	GetDesignAdvice(ctx context.Context, prompt string) string
}

// GenerateRequest is a single-turn completion request
type GenerateRequest struct {
	Model     string
	System    string
	Prompt    string
	MaxTokens int
}

// AdviceProvider is a text-generation backend used by AdviceService
type AdviceProvider interface {
	Name() string
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}
