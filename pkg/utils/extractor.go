package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// ExtractorClientInterface is the text-extraction capability the query parser
// depends on. The response may be ill-formed; callers own the fallback.
type ExtractorClientInterface interface {
	Extract(ctx context.Context, prompt string) (string, error)
}

type OpenAIExtractorClient struct {
	client *openai.Client
	model  string
}

func (c *OpenAIExtractorClient) Extract(ctx context.Context, prompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// GeminiExtractorClient implements ExtractorClientInterface using Google's Gemini models
type GeminiExtractorClient struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractorClient(apiKey, model string) (ExtractorClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractorClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiExtractorClient) Extract(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiExtractorClient) Close() error {
	return c.client.Close()
}

// NewExtractorClient Factory function to create either OpenAI or Gemini client based on config
func NewExtractorClient(provider, apiKey, model string) (ExtractorClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		if model == "" {
			model = openai.GPT4oMini
		}
		return &OpenAIExtractorClient{
			client: openai.NewClient(apiKey),
			model:  model,
		}, nil
	case "gemini":
		return NewGeminiExtractorClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
