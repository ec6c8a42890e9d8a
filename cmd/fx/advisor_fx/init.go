package advisor_fx

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/fx"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient,
	ProvideAdvisorService,
)

// CompletionConfig holds configuration for the generative text backend.
type CompletionConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// ProvideCompletionClient creates the completion client selected by
// LLM_PROVIDER. Qwen runs through DashScope's OpenAI-compatible endpoint.
func ProvideCompletionClient() (utils.CompletionClientInterface, error) {
	config := getCompletionConfig()

	log.Printf("Initializing %s completion client with model: %s", config.Provider, config.Model)

	client, err := utils.NewCompletionClient(config.Provider, config.APIKey, config.Model, config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return client, nil
}

func ProvideAdvisorService(client utils.CompletionClientInterface) services.AdvisorServiceInterface {
	maxRetries := 3
	if v := os.Getenv("TRIP_ADVISE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxRetries = n
		}
	}
	return services.NewTripAdvisorService(client, maxRetries)
}

func getCompletionConfig() CompletionConfig {
	provider := getEnvWithDefault("LLM_PROVIDER", "qwen")

	var apiKey, model, baseURL string

	switch strings.ToLower(provider) {
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "qwen":
		apiKey = os.Getenv("DASHSCOPE_API_KEY")
		model = getEnvWithDefault("QWEN_MODEL", "qwen-max")
		baseURL = getEnvWithDefault("DASHSCOPE_BASE_URL", utils.DashScopeBaseURL)
		if apiKey == "" {
			log.Fatal("DASHSCOPE_API_KEY is required when using Qwen provider")
		}
	}

	return CompletionConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
		BaseURL:  baseURL,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
