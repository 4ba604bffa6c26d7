package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/backend/internal/client"
	"github.com/careconnect/backend/internal/config"
	"github.com/careconnect/backend/internal/db"
	"github.com/careconnect/backend/internal/service"
)

const testSecret = "handler-test-secret"

// 2025년 기준 비밀번호는 banana1983
var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type stubLLM struct {
	content   string
	err       error
	fragments []string
	streamErr error

	lastRequest client.CompletionRequest
}

func (s *stubLLM) Provider() string { return "stub" }

func (s *stubLLM) Complete(ctx context.Context, req client.CompletionRequest) (string, error) {
	s.lastRequest = req
	return s.content, s.err
}

func (s *stubLLM) Stream(ctx context.Context, req client.CompletionRequest) iter.Seq2[string, error] {
	s.lastRequest = req
	return func(yield func(string, error) bool) {
		for _, fragment := range s.fragments {
			if !yield(fragment, nil) {
				return
			}
		}
		if s.streamErr != nil {
			yield("", s.streamErr)
		}
	}
}

type testServer struct {
	router  *gin.Engine
	auth    *service.AuthService
	llm     *stubLLM
	limiter *LoginRateLimiter
}

type testOptions struct {
	requireAuth bool
	rateLimit   string
	rateBurst   string
}

func newTestServer(t *testing.T, llm *stubLLM, opts testOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if llm == nil {
		llm = &stubLLM{}
	}
	if opts.rateLimit == "" {
		opts.rateLimit = "0"
	}
	if opts.rateBurst == "" {
		opts.rateBurst = "5"
	}

	authService, err := service.NewAuthService(config.AuthConfig{JWTSecret: testSecret}, testClock)
	require.NoError(t, err)
	chatService, err := service.NewChatService(llm, "0s", testClock)
	require.NoError(t, err)
	historyService := service.NewHistoryService(db.NewMemory(), "", testClock)
	limiter, err := NewLoginRateLimiter(opts.rateLimit, opts.rateBurst, testClock)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		Auth:                 authService,
		Chat:                 chatService,
		History:              historyService,
		LoginLimiter:         limiter,
		Logger:               zerolog.Nop(),
		CORSAllowedOrigins:   []string{"http://localhost:5173"},
		CORSAllowCredentials: true,
		ChatRequireAuth:      opts.requireAuth,
	})

	return &testServer{router: router, auth: authService, llm: llm, limiter: limiter}
}

func (s *testServer) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
