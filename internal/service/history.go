// 대화 기록 저장소 어댑터
//
// 대화 기록 전체를 하나의 JSON 배열로 고정 키 하나에 저장합니다.
//   - 사용자/세션 구분 없음 (프로세스 전역 단일 기록)
//   - 읽기/쓰기 실패는 로그만 남기고 호출자에게 전달하지 않음
//   - Append는 load → append → save 이며 잠금이 없어 동시 호출 시 갱신이 유실될 수 있음

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/db"
	"github.com/careconnect/backend/internal/metrics"
	"github.com/careconnect/backend/internal/model"
)

// BlobStore is the key/value persistence the history is kept in.
type BlobStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, value []byte) error
}

type HistoryService struct {
	store BlobStore
	key   string
	now   func() time.Time
}

func NewHistoryService(store BlobStore, key string, now func() time.Time) *HistoryService {
	if key == "" {
		key = "bruce_conversation_history"
	}
	if now == nil {
		now = time.Now
	}
	return &HistoryService{store: store, key: key, now: now}
}

// Load returns the stored transcript, or an empty one if the key is absent or unreadable.
func (s *HistoryService) Load(ctx context.Context) []model.ChatMessage {
	raw, err := s.store.GetBlob(ctx, s.key)
	if err != nil {
		if !db.IsNotFound(err) {
			metrics.HistoryStoreErrors.WithLabelValues("load").Inc()
			log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("failed to read conversation history")
		}
		return []model.ChatMessage{}
	}

	var history []model.ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		metrics.HistoryStoreErrors.WithLabelValues("decode").Inc()
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("failed to decode conversation history")
		return []model.ChatMessage{}
	}
	if history == nil {
		history = []model.ChatMessage{}
	}
	return history
}

// Save overwrites the transcript. Failures are logged and dropped.
func (s *HistoryService) Save(ctx context.Context, history []model.ChatMessage) {
	if history == nil {
		history = []model.ChatMessage{}
	}

	raw, err := json.Marshal(history)
	if err != nil {
		metrics.HistoryStoreErrors.WithLabelValues("encode").Inc()
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("failed to encode conversation history")
		return
	}

	if err := s.store.PutBlob(ctx, s.key, raw); err != nil {
		metrics.HistoryStoreErrors.WithLabelValues("save").Inc()
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("failed to save conversation history")
	}
}

// Append adds msg to the end of the transcript, stamping a timestamp when missing.
func (s *HistoryService) Append(ctx context.Context, msg model.ChatMessage) model.ChatMessage {
	if msg.Timestamp == "" {
		msg.Timestamp = FormatTimestamp(s.now())
	}

	history := s.Load(ctx)
	history = append(history, msg)
	s.Save(ctx, history)
	return msg
}

func (s *HistoryService) Clear(ctx context.Context) {
	s.Save(ctx, []model.ChatMessage{})
}
