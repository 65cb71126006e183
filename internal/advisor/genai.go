package advisor

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GenAI is a Generator backed by the Gemini API.
type GenAI struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenAI creates a Gemini client. cfg may carry a custom HTTP base URL for tests.
func NewGenAI(ctx context.Context, cfg *genai.ClientConfig, model string, timeout time.Duration) (*GenAI, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if cfg.Backend == genai.BackendUnspecified {
		cfg.Backend = genai.BackendGeminiAPI
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, model: model, timeout: timeout}, nil
}

func (g *GenAI) Generate(ctx context.Context, p Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.Text), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   p.Schema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	return text, nil
}
