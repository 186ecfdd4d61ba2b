package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	log zerolog.Logger
}

func NewLogger() *Logger {
	level := zerolog.InfoLevel
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		if parsed, err := zerolog.ParseLevel(value); err == nil {
			level = parsed
		}
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	return &Logger{log: logger}
}

func (l *Logger) Info(msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) Warn(msg string, err error) {
	l.log.Warn().Err(err).Msg(msg)
}

func (l *Logger) Error(msg string, err error) {
	l.log.Error().Err(err).Msg(msg)
}

// Request logs one handled HTTP request. Used by the logging middleware.
func (l *Logger) Request(method, path, requestID string, status int, duration time.Duration) {
	l.log.Info().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", status).
		Dur("duration", duration).
		Msg("request")
}
