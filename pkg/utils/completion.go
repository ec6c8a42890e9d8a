package utils

import (
	"context"
	"fmt"
	"strings"
)

// CompletionClientInterface is the capability every generative text
// backend must provide: take a prompt, return the completion text or an
// explicit failure. Prompt construction stays backend-agnostic.
type CompletionClientInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompletionClient creates a completion client for the configured
// provider. "openai" and "qwen" share the OpenAI-compatible client; Qwen
// is served through DashScope's compatible-mode endpoint via baseURL.
func NewCompletionClient(provider, apiKey, model, baseURL string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "gemini":
		return NewGeminiCompletionClient(apiKey, model)
	case "openai", "qwen":
		return NewOpenAICompatClient(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s. Use 'gemini', 'openai' or 'qwen'", provider)
	}
}
