package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/config"
)

// Setup builds the process logger from cfg and installs it as the global zerolog logger
// and as the fallback for log.Ctx.
func Setup(cfg config.LogConfig) zerolog.Logger {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	// log.Ctx falls back to this when no request logger is attached
	zerolog.DefaultContextLogger = &log.Logger
	return logger
}
