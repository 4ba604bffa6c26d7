// @title CareConnect Backend API
// @version 1.0.0
// @description Dynamic-password login and the Bruce chat relay.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/client"
	"github.com/careconnect/backend/internal/config"
	"github.com/careconnect/backend/internal/db"
	"github.com/careconnect/backend/internal/handler"
	"github.com/careconnect/backend/internal/logging"
	"github.com/careconnect/backend/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.Log)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 대화 기록 저장소
	store, err := db.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open history store")
	}
	defer store.Close()

	// 2. 외부 LLM 클라이언트
	llm, err := client.NewCompletionClient(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Msg("failed to create completion client")
	}

	// 3. 서비스
	authService, err := service.NewAuthService(cfg.Auth, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create auth service")
	}
	chatService, err := service.NewChatService(llm, cfg.Chat.StreamPacing, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat service")
	}
	historyService := service.NewHistoryService(store, cfg.Store.HistoryKey, time.Now)

	loginLimiter, err := handler.NewLoginRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create login rate limiter")
	}

	chatRequireAuth, err := strconv.ParseBool(cfg.Chat.RequireAuth)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid CHAT_REQUIRE_AUTH")
	}
	corsAllowCredentials, err := strconv.ParseBool(cfg.Server.CORSAllowCredentials)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid CORS_ALLOW_CREDENTIALS")
	}
	if err := handler.ValidateCORS(cfg.Server.CORSAllowedOrigins, corsAllowCredentials); err != nil {
		log.Fatal().Err(err).Msg("invalid CORS config")
	}
	if !chatRequireAuth {
		log.Warn().Msg("chat and history routes are unauthenticated (CHAT_REQUIRE_AUTH=false)")
	}

	// 4. 라우터
	router := handler.NewRouter(handler.RouterDeps{
		Auth:                 authService,
		Chat:                 chatService,
		History:              historyService,
		LoginLimiter:         loginLimiter,
		Logger:               logger,
		CORSAllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		CORSAllowCredentials: corsAllowCredentials,
		ChatRequireAuth:      chatRequireAuth,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Server.Env).
			Str("llm_provider", llm.Provider()).
			Str("store_backend", cfg.Store.Backend).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
