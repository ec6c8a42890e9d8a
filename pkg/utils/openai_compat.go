package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DashScopeBaseURL is Alibaba's OpenAI-compatible endpoint serving the
// Qwen models the original advisor ran on.
const DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// OpenAICompatClient implements CompletionClientInterface against any
// OpenAI-compatible chat completion endpoint (OpenAI itself, or DashScope
// for Qwen).
type OpenAICompatClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICompatClient(apiKey, model, baseURL string) CompletionClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAICompatClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAICompatClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
