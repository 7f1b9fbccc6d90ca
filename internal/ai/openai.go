package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient classifies text with an OpenAI chat model.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a Provider backed by the OpenAI API. An empty model
// selects gpt-4o-mini.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is empty")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}, nil
}

// ClassifyThemes sends one classification request and parses the
// comma-separated answer. Temperature is pinned to zero so identical text
// yields identical tags.
func (c *OpenAIClient) ClassifyThemes(ctx context.Context, text string) ([]string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai classification: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return parseThemes(resp.Choices[0].Message.Content), nil
}
