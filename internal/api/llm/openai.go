package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIClient(apiKey, model string, temperature float32) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *OpenAIClient) GenerateCompletion(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Model() string { return c.model }

var _ Client = (*OpenAIClient)(nil)
