package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careconnect/backend/internal/metrics"
	"github.com/careconnect/backend/internal/model"
	"github.com/careconnect/backend/internal/service"
)

const (
	authUserKey     = "auth_user"
	requestIDHeader = "X-Request-ID"
	bearerPrefix    = "Bearer "
)

// AuthMiddleware requires a valid bearer token from the Authorization header,
// falling back to the access_token cookie set at login.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(authService.CookieConfig().Name); err == nil {
				token = bearerToken(cookie)
			}
		}
		if token == "" {
			writeUnauthorized(c, detailInvalidCredentials)
			return
		}

		user, err := authService.ParseAccessToken(token)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func bearerToken(value string) string {
	if len(value) < len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(value[len(bearerPrefix):])
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

var ErrCORSMisconfigured = errors.New("cors config invalid")

// ValidateCORS는 와일드카드 origin과 credentials 허용을 함께 쓰는 설정을 거부
// (모든 origin이 쿠키를 실어 요청할 수 있게 됨)
func ValidateCORS(allowedOrigins []string, allowCredentials bool) error {
	if !allowCredentials {
		return nil
	}
	for _, origin := range allowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			return fmt.Errorf("%w: CORS_ALLOWED_ORIGINS=* requires CORS_ALLOW_CREDENTIALS=false", ErrCORSMisconfigured)
		}
	}
	return nil
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := originMap[origin]
			if ok || allowAll {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, X-Request-ID")
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger tags each request with an X-Request-ID, attaches a request-scoped
// zerolog logger to the request context and writes one access log line.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		logger := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Metrics records request counts and latency labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
