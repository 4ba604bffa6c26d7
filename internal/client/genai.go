// Gemini(google.golang.org/genai) 기반 chat completion 클라이언트
//
// 환경변수:
//   - LLM_PROVIDER=gemini
//   - AI_API_KEY: Gemini API Key
//   - LLM_MODEL: 기본값 gemini-2.0-flash

package client

import (
	"context"
	"fmt"
	"iter"
	"time"

	"google.golang.org/genai"

	"github.com/careconnect/backend/internal/config"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(cfg config.LLMConfig, timeout time.Duration) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: AI_API_KEY", ErrMissingAPIKey)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

func (c *GeminiClient) Provider() string {
	return "gemini"
}

func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents, genCfg := toGenAI(req)
	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", err
	}
	if res == nil || len(res.Candidates) == 0 {
		return "", ErrNoChoices
	}
	return res.Text(), nil
}

func (c *GeminiClient) Stream(ctx context.Context, req CompletionRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		contents, genCfg := toGenAI(req)
		for res, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, genCfg) {
			if err != nil {
				yield("", err)
				return
			}
			text := res.Text()
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// system 메시지는 SystemInstruction으로, assistant는 genai의 model 역할로 변환
func toGenAI(req CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		TopP:            genai.Ptr(req.TopP),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			genCfg.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents, genCfg
}
