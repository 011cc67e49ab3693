package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is the Gemini-backed alternative, selectable via the
// llm.provider config key.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *GeminiClient) GenerateCompletion(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](c.temperature),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	for _, candidate := range result.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			if txt := candidate.Content.Parts[0].Text; txt != "" {
				return txt, nil
			}
		}
	}
	return "", fmt.Errorf("gemini generate content: no text candidates returned")
}

func (c *GeminiClient) Model() string { return c.model }

var _ Client = (*GeminiClient)(nil)
