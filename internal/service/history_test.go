package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/backend/internal/db"
	"github.com/careconnect/backend/internal/model"
)

type failingStore struct{}

func (failingStore) GetBlob(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func (failingStore) PutBlob(ctx context.Context, key string, value []byte) error {
	return errors.New("connection reset")
}

// barrierStore holds every GetBlob until two readers have arrived.
type barrierStore struct {
	*db.Memory
	wg sync.WaitGroup
}

func newBarrierStore() *barrierStore {
	s := &barrierStore{Memory: db.NewMemory()}
	s.wg.Add(2)
	return s
}

func (s *barrierStore) GetBlob(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.Memory.GetBlob(ctx, key)
	s.wg.Done()
	s.wg.Wait()
	return raw, err
}

func newTestHistoryService(store BlobStore) *HistoryService {
	return NewHistoryService(store, "", fixedClock(time.Date(2025, time.April, 2, 9, 30, 0, 0, time.UTC)))
}

func TestHistoryLoadMissingKey(t *testing.T) {
	svc := newTestHistoryService(db.NewMemory())

	history := svc.Load(context.Background())
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestHistoryClearAddLoad(t *testing.T) {
	ctx := context.Background()
	svc := newTestHistoryService(db.NewMemory())

	svc.Clear(ctx)
	svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: "hi", Timestamp: "2025-01-01T00:00:00.000Z"})

	history := svc.Load(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, model.ChatMessage{Role: model.RoleUser, Content: "hi", Timestamp: "2025-01-01T00:00:00.000Z"}, history[0])
}

func TestHistoryAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestHistoryService(db.NewMemory())

	svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: "one"})
	svc.Append(ctx, model.ChatMessage{Role: model.RoleAssistant, Content: "two"})
	svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: "three"})

	history := svc.Load(ctx)
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Content)
	assert.Equal(t, "two", history[1].Content)
	assert.Equal(t, "three", history[2].Content)

	svc.Clear(ctx)
	assert.Empty(t, svc.Load(ctx))
}

func TestHistoryAppendStampsTimestamp(t *testing.T) {
	svc := newTestHistoryService(db.NewMemory())

	stored := svc.Append(context.Background(), model.ChatMessage{Role: model.RoleUser, Content: "hi"})
	assert.Equal(t, "2025-04-02T09:30:00.000Z", stored.Timestamp)
}

func TestHistoryUsesConfiguredKey(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()
	svc := NewHistoryService(store, "custom_key", nil)

	svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: "hi"})

	raw, err := store.GetBlob(ctx, "custom_key")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"content":"hi"`)

	_, err = store.GetBlob(ctx, "bruce_conversation_history")
	assert.True(t, db.IsNotFound(err))
}

func TestHistoryCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()
	require.NoError(t, store.PutBlob(ctx, "bruce_conversation_history", []byte("{not json")))

	svc := newTestHistoryService(store)
	assert.Empty(t, svc.Load(ctx))
}

func TestHistoryStoreFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	svc := newTestHistoryService(failingStore{})

	assert.Empty(t, svc.Load(ctx))
	assert.NotPanics(t, func() {
		svc.Save(ctx, []model.ChatMessage{{Role: model.RoleUser, Content: "hi"}})
		svc.Clear(ctx)
	})

	stored := svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: "hi"})
	assert.Equal(t, "hi", stored.Content)
}

// 동시에 Append 하면 두 호출이 같은 스냅샷을 읽고 마지막 저장만 남음
func TestHistoryConcurrentAppendLosesUpdate(t *testing.T) {
	ctx := context.Background()
	store := newBarrierStore()
	svc := newTestHistoryService(store)

	var wg sync.WaitGroup
	for _, content := range []string{"a", "b"} {
		wg.Add(1)
		go func(content string) {
			defer wg.Done()
			svc.Append(ctx, model.ChatMessage{Role: model.RoleUser, Content: content})
		}(content)
	}
	wg.Wait()

	history := newTestHistoryService(store.Memory).Load(ctx)
	assert.Len(t, history, 1)
}
