package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/careconnect/backend/internal/service"
)

type RouterDeps struct {
	Auth         *service.AuthService
	Chat         *service.ChatService
	History      *service.HistoryService
	LoginLimiter *LoginRateLimiter
	Logger       zerolog.Logger

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	// ChatRequireAuth puts /api/bruce/* behind the bearer guard.
	ChatRequireAuth bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	// 로그인 제한이 X-Forwarded-For 값을 믿지 않도록 프록시 신뢰 해제
	_ = router.SetTrustedProxies(nil)
	router.Use(
		RequestLogger(deps.Logger),
		Metrics(),
		Recovery(),
		CORSMiddleware(deps.CORSAllowedOrigins, deps.CORSAllowCredentials),
	)

	router.GET("/health", Health)
	router.GET("/ping", Ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(deps.Auth)
	requireAuth := AuthMiddleware(deps.Auth)

	auth := router.Group("/api/auth")
	{
		login := []gin.HandlerFunc{authHandler.Login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{deps.LoginLimiter.Middleware()}, login...)
		}
		auth.POST("/login", login...)
		auth.GET("/password-hint", authHandler.PasswordHint)
		auth.GET("/verify-token", requireAuth, authHandler.VerifyToken)
	}

	chatHandler := NewChatHandler(deps.Chat)
	historyHandler := NewHistoryHandler(deps.History)

	bruce := router.Group("/api/bruce")
	if deps.ChatRequireAuth {
		bruce.Use(requireAuth)
	}
	{
		bruce.POST("/chat", chatHandler.Chat)
		bruce.POST("/chat/stream", chatHandler.ChatStream)
		bruce.GET("/history", historyHandler.GetHistory)
		bruce.POST("/history/add", historyHandler.AddMessage)
		bruce.POST("/history/clear", historyHandler.ClearHistory)
	}

	return router
}
