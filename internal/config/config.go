// 환경변수 기반 설정 로딩
//
// 개발 환경에서는 .env 파일이 있으면 먼저 읽습니다.
// duration/bool 값은 문자열 그대로 보관하고, 사용하는 생성자에서 파싱합니다.

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Chat   ChatConfig
	LLM    LLMConfig
	Store  StoreConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port                 string
	Env                  string
	CORSAllowedOrigins   []string
	CORSAllowCredentials string
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       string
	CookieSecure   string
	CookieSameSite string
	CookieDomain   string
	CookiePath     string
	LoginRateLimit string
	LoginRateBurst string
}

type ChatConfig struct {
	RequireAuth  string
	StreamPacing string
}

type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  string
}

type StoreConfig struct {
	Backend    string
	HistoryKey string
	SQLitePath string
	RedisURL   string
	Postgres   PostgresConfig
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() Config {
	_ = godotenv.Load()

	env := getenv("APP_ENV", "development")
	provider := strings.ToLower(getenv("LLM_PROVIDER", "groq"))

	return Config{
		Server: ServerConfig{
			Port:                 getenv("PORT", "8000"),
			Env:                  env,
			CORSAllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "true"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			TokenTTL:       getenv("AUTH_TOKEN_TTL", "168h"),
			CookieSecure:   getenv("AUTH_COOKIE_SECURE", "false"),
			CookieSameSite: getenv("AUTH_COOKIE_SAMESITE", "lax"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookiePath:     getenv("AUTH_COOKIE_PATH", "/"),
			LoginRateLimit: getenv("LOGIN_RATE_LIMIT", "10"),
			LoginRateBurst: getenv("LOGIN_RATE_BURST", "5"),
		},
		Chat: ChatConfig{
			RequireAuth:  getenv("CHAT_REQUIRE_AUTH", "false"),
			StreamPacing: getenv("CHAT_STREAM_PACING", "10ms"),
		},
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   llmAPIKey(provider),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
			Model:    os.Getenv("LLM_MODEL"),
			Timeout:  getenv("LLM_TIMEOUT", "120s"),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getenv("STORE_BACKEND", "memory")),
			HistoryKey: getenv("HISTORY_KEY", "bruce_conversation_history"),
			SQLitePath: getenv("SQLITE_PATH", "./data/careconnect.db"),
			RedisURL:   os.Getenv("REDIS_URL"),
			Postgres: PostgresConfig{
				DatabaseURL: os.Getenv("DATABASE_URL"),
				Host:        getenv("PGHOST", "localhost"),
				Port:        getenv("PGPORT", "5432"),
				User:        os.Getenv("PGUSER"),
				Password:    os.Getenv("PGPASSWORD"),
				Database:    os.Getenv("PGDATABASE"),
				SSLMode:     getenv("PGSSLMODE", "disable"),
			},
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", defaultLogFormat(env)),
		},
	}
}

// IsDevelopment reports whether the process runs with APP_ENV=development.
func (c Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// gemini는 기존 AI_API_KEY를 그대로 사용
func llmAPIKey(provider string) string {
	if provider == "gemini" {
		return os.Getenv("AI_API_KEY")
	}
	return os.Getenv("GROQ_API_KEY")
}

func defaultLogFormat(env string) string {
	if env == "development" {
		return "console"
	}
	return "json"
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
