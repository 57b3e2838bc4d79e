package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New は環境に応じたロガーを返す（prod は JSON、それ以外はコンソール）
func New(env string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if env != "prod" && env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "chefbazaar").
		Logger()
}
