package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient classifies text with a Gemini model. It exists as an
// alternative to the OpenAI provider for deployments that already hold a
// Google API key.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a Provider backed by the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Close releases the underlying gRPC connection.
func (c *GeminiClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// ClassifyThemes sends one classification request and parses the answer.
func (c *GeminiClient) ClassifyThemes(ctx context.Context, text string) ([]string, error) {
	model := c.client.GenerativeModel(c.model)
	var zero float32
	model.Temperature = &zero

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("gemini classification: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}
	answer := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseThemes(answer), nil
}
