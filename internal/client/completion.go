package client

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/careconnect/backend/internal/config"
)

var (
	ErrNoChoices     = errors.New("completion returned no choices")
	ErrMissingAPIKey = errors.New("missing LLM API key")
)

// CompletionMessage is one role/content pair sent upstream.
type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries the conversation and sampling parameters for one call.
type CompletionRequest struct {
	Messages    []CompletionMessage
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Completer is implemented by every upstream chat-completion provider.
type Completer interface {
	Provider() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Stream(ctx context.Context, req CompletionRequest) iter.Seq2[string, error]
}

// NewCompletionClient picks the upstream provider named by cfg.Provider.
func NewCompletionClient(cfg config.LLMConfig) (Completer, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", cfg.Timeout, err)
	}

	switch cfg.Provider {
	case "", "groq":
		groq, err := NewGroqClient(cfg, timeout)
		if err != nil {
			return nil, err
		}
		return groq, nil
	case "gemini":
		gemini, err := NewGeminiClient(cfg, timeout)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}
