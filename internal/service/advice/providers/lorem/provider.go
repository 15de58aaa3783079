// Package lorem is an offline advice provider that answers with lorem ipsum.
// It is meant for local development and demos without an API key.
package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	"atelier/internal/domain/services"
)

// Provider generates up to three lorem ipsum sentences per reply
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Generate returns three sentences after a model-specific delay
func (p *Provider) Generate(ctx context.Context, req *services.GenerateRequest) (string, error) {
	if !p.SupportsModel(req.Model) {
		return "", fmt.Errorf("model '%s' is not supported by lorem provider", req.Model)
	}

	if delay := replyDelay(req.Model); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	sentences := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		sentences = append(sentences, p.generator.Sentence(6, 14))
	}
	return strings.Join(sentences, " "), nil
}

// replyDelay simulates provider latency: lorem-slow waits, everything else answers at once.
func replyDelay(model string) time.Duration {
	if model == "lorem-slow" {
		return 2 * time.Second
	}
	return 0
}
