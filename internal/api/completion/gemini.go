package completion

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const (
	geminiModel  = "gemini-2.0-flash"
	geminiEnvKey = "GOOGLE_GEMINI_API_KEY"
)

// GeminiClient is the alternate provider for environments without a
// Perplexity key. Results are not web-grounded, so the source tag differs.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient reads the credential from GOOGLE_GEMINI_API_KEY and fails
// immediately when it is missing.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	apiKey := os.Getenv(geminiEnvKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingAPIKey, geminiEnvKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	model := cfg.Model
	if model == "" {
		model = geminiModel
	}
	temperature := float32(cfg.Temperature)
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := int32(cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (c *GeminiClient) Source() string { return "gemini-search" }

// Complete sends the prompt with the system text as a system instruction and
// returns the generated text.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	text := result.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
