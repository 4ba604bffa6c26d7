// Bruce 채팅 릴레이
//
// 처리 흐름:
//  1. 요청 메시지 중 user/assistant 역할만 남김 (클라이언트가 보낸 system 메시지는 버림)
//  2. 고정 system prompt를 맨 앞에 추가
//  3. 외부 completion API 호출 (버퍼링 또는 스트리밍)
//
// 재시도는 하지 않습니다. 실패는 한 번만 보고합니다.

package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/client"
	"github.com/careconnect/backend/internal/metrics"
	"github.com/careconnect/backend/internal/model"
)

const (
	chatTemperature = 0.6
	chatTopP        = 0.95
	chatMaxTokens   = 8096

	defaultStreamPacing = 10 * time.Millisecond
)

var (
	ErrInvalidChatRequest = errors.New("invalid chat request")
	ErrUpstream           = errors.New("upstream completion failed")
	ErrEmptyReply         = errors.New("completion returned empty content")

	ErrStreamNotSupported = fmt.Errorf("%w: streaming requested on buffered endpoint", ErrInvalidChatRequest)
	ErrStreamRequired     = fmt.Errorf("%w: buffered request on streaming endpoint", ErrInvalidChatRequest)
)

// CompletionClient is the upstream chat-completion API.
type CompletionClient interface {
	Provider() string
	Complete(ctx context.Context, req client.CompletionRequest) (string, error)
	Stream(ctx context.Context, req client.CompletionRequest) iter.Seq2[string, error]
}

type ChatService struct {
	llm    CompletionClient
	pacing time.Duration
	now    func() time.Time
}

// NewChatService builds the relay. pacing is the pause after each relayed stream fragment;
// an empty string selects the 10ms default.
func NewChatService(llm CompletionClient, pacing string, now func() time.Time) (*ChatService, error) {
	d := defaultStreamPacing
	if strings.TrimSpace(pacing) != "" {
		var err error
		d, err = time.ParseDuration(pacing)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: invalid CHAT_STREAM_PACING", ErrMisconfigured)
		}
	}
	if now == nil {
		now = time.Now
	}
	return &ChatService{llm: llm, pacing: d, now: now}, nil
}

// CheckStreamFlag rejects a request whose stream flag does not match the endpoint serving it.
func CheckStreamFlag(req model.ChatRequest, streaming bool) error {
	switch {
	case streaming && !req.Stream:
		return ErrStreamRequired
	case !streaming && req.Stream:
		return ErrStreamNotSupported
	}
	return nil
}

// Complete returns the single assistant reply for history, stamped with the current time.
func (s *ChatService) Complete(ctx context.Context, history []model.ChatMessage) (*model.ChatMessage, error) {
	content, err := s.llm.Complete(ctx, s.buildRequest(history))
	if err == nil && content == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(s.llm.Provider(), "buffered", "error").Inc()
		log.Ctx(ctx).Error().Err(err).Str("provider", s.llm.Provider()).Msg("chat completion failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	metrics.UpstreamRequests.WithLabelValues(s.llm.Provider(), "buffered", "ok").Inc()
	return &model.ChatMessage{
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: FormatTimestamp(s.now()),
	}, nil
}

// CompleteStream relays reply fragments as the upstream produces them.
// The sequence is lazy and one-shot. An upstream failure ends it with a single
// error wrapping ErrUpstream; rendering that error is up to the caller.
func (s *ChatService) CompleteStream(ctx context.Context, history []model.ChatMessage) iter.Seq2[string, error] {
	req := s.buildRequest(history)

	return func(yield func(string, error) bool) {
		logger := log.Ctx(ctx)
		result := "ok"
		defer func() {
			metrics.UpstreamRequests.WithLabelValues(s.llm.Provider(), "stream", result).Inc()
		}()

		for fragment, err := range s.llm.Stream(ctx, req) {
			if err != nil {
				if ctx.Err() != nil {
					result = "canceled"
					logger.Info().Msg("chat stream abandoned by client")
					return
				}
				result = "error"
				logger.Error().Err(err).Str("provider", s.llm.Provider()).Msg("chat stream failed")
				yield("", fmt.Errorf("%w: %v", ErrUpstream, err))
				return
			}

			metrics.StreamFragments.Inc()
			if !yield(fragment, nil) {
				result = "canceled"
				return
			}

			if !s.pause(ctx) {
				result = "canceled"
				return
			}
		}
	}
}

func (s *ChatService) pause(ctx context.Context) bool {
	if s.pacing <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *ChatService) buildRequest(history []model.ChatMessage) client.CompletionRequest {
	messages := make([]client.CompletionMessage, 0, len(history)+1)
	messages = append(messages, client.CompletionMessage{Role: model.RoleSystem, Content: systemPrompt})
	for _, msg := range filterConversation(history) {
		messages = append(messages, client.CompletionMessage{Role: msg.Role, Content: msg.Content})
	}

	return client.CompletionRequest{
		Messages:    messages,
		Temperature: chatTemperature,
		TopP:        chatTopP,
		MaxTokens:   chatMaxTokens,
	}
}

// filterConversation keeps only user and assistant turns, in order.
func filterConversation(history []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role == model.RoleUser || msg.Role == model.RoleAssistant {
			out = append(out, msg)
		}
	}
	return out
}

// FormatTimestamp renders t as the ISO-8601 form stored on chat messages.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
