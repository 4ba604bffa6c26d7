// Groq(OpenAI 호환) chat completions API 클라이언트
//
// 환경변수:
//   - GROQ_API_KEY: Groq API Key (gsk_...)
//   - LLM_BASE_URL: 기본값 https://api.groq.com/openai/v1
//   - LLM_MODEL: 기본값 deepseek-r1-distill-llama-70b
//
// 스트리밍 응답은 SSE(data: {...}) 형식이며 data: [DONE] 으로 끝납니다.

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/careconnect/backend/internal/config"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "deepseek-r1-distill-llama-70b"
)

// APIError is a failure reported by the completion API, either as a non-2xx
// answer or as an error event inside a stream.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API returned status %d: %s", e.Status, e.Message)
}

type GroqClient struct {
	model string

	// client는 전체 응답 시간 제한, streamClient는 요청 context로만 종료
	client       *openai.Client
	streamClient *openai.Client
}

func NewGroqClient(cfg config.LLMConfig, timeout time.Duration) (*GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GROQ_API_KEY", ErrMissingAPIKey)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}

	newClient := func(httpClient *http.Client) *openai.Client {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = baseURL
		clientCfg.HTTPClient = httpClient
		return openai.NewClientWithConfig(clientCfg)
	}
	transport := &terminatedBodyTransport{base: http.DefaultTransport}

	return &GroqClient{
		model:        model,
		client:       newClient(&http.Client{Timeout: timeout, Transport: transport}),
		streamClient: newClient(&http.Client{Transport: transport}),
	}, nil
}

func (c *GroqClient) Provider() string {
	return "groq"
}

// POST /chat/completions (stream=false)
func (c *GroqClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(req))
	if err != nil {
		return "", toAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream issues a stream=true completion when iterated and yields content deltas as they arrive.
// The sequence is one-shot; breaking out of it closes the upstream response.
func (c *GroqClient) Stream(ctx context.Context, req CompletionRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream, err := c.streamClient.CreateChatCompletionStream(ctx, c.request(req))
		if err != nil {
			yield("", toAPIError(err))
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", toAPIError(err))
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}

			content := chunk.Choices[0].Delta.Content
			if content == "" {
				continue
			}
			if !yield(content, nil) {
				return
			}
		}
	}
}

func (c *GroqClient) request(req CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}
	return openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}
}

func toAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{Status: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return fmt.Errorf("completion request failed: %w", err)
}

// terminatedBodyTransport makes every response body end with a newline so the
// last SSE line is parsed even when the upstream closes without one.
type terminatedBodyTransport struct {
	base http.RoundTripper
}

func (t *terminatedBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &terminatedBody{ReadCloser: resp.Body}
	return resp, nil
}

type terminatedBody struct {
	io.ReadCloser
	last    byte
	seen    bool
	pending bool
	done    bool
}

func (b *terminatedBody) Read(p []byte) (int, error) {
	if b.done {
		return 0, io.EOF
	}
	if b.pending {
		if len(p) == 0 {
			return 0, nil
		}
		p[0] = '\n'
		b.pending = false
		b.done = true
		return 1, nil
	}

	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.last = p[n-1]
		b.seen = true
	}
	if err != io.EOF {
		return n, err
	}

	if !b.seen || b.last == '\n' {
		b.done = true
		return n, io.EOF
	}
	if n < len(p) {
		p[n] = '\n'
		b.done = true
		return n + 1, nil
	}
	b.pending = true
	return n, nil
}
