package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/config"
	"github.com/careconnect/backend/internal/metrics"
	"github.com/careconnect/backend/internal/model"
)

const (
	accessCookieName = "access_token"
	adminSubject     = "admin"
	defaultTokenTTL  = 7 * 24 * time.Hour
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("auth config invalid")
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// AuthService runs the single shared-password login and guards bearer tokens.
type AuthService struct {
	verifier  *CredentialVerifier
	tokens    *TokenService
	tokenTTL  time.Duration
	cookieCfg CookieConfig
}

func NewAuthService(cfg config.AuthConfig, now func() time.Time) (*AuthService, error) {
	tokens, err := NewTokenService(cfg.JWTSecret, now)
	if err != nil {
		return nil, err
	}

	tokenTTL := defaultTokenTTL
	if strings.TrimSpace(cfg.TokenTTL) != "" {
		tokenTTL, err = time.ParseDuration(cfg.TokenTTL)
		if err != nil || tokenTTL <= 0 {
			return nil, fmt.Errorf("%w: invalid AUTH_TOKEN_TTL", ErrMisconfigured)
		}
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, false)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		verifier: NewCredentialVerifier(now),
		tokens:   tokens,
		tokenTTL: tokenTTL,
		cookieCfg: CookieConfig{
			Name:     accessCookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(tokenTTL.Seconds()),
		},
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// Login checks password against the current dynamic password and issues an admin token.
func (s *AuthService) Login(ctx context.Context, password string) (IssuedToken, error) {
	logger := log.Ctx(ctx)
	logger.Info().Int("password_length", len(password)).Msg("login attempt")

	if !s.verifier.Verify(password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logger.Info().Msg("login rejected: password mismatch")
		return IssuedToken{}, ErrUnauthorized
	}

	issued, err := s.tokens.Issue(adminSubject, s.tokenTTL)
	if err != nil {
		return IssuedToken{}, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info().Time("expires_at", issued.ExpiresAt).Msg("token issued")
	return issued, nil
}

func (s *AuthService) PasswordHint() string {
	return s.verifier.Hint()
}

func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	return s.tokens.Validate(tokenStr)
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return http.SameSiteLaxMode, nil
	}
	switch value {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("unknown SameSite mode %q", value)
	}
}
