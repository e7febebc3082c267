package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/config"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and request-logging middleware: caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg config.LLMConfig, sink EventSink, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		base, err = NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.APIKey, cfg.Model)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, sink, log), DefaultRetryConfig()), nil
}
