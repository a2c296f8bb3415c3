package loggers

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

var setupOnce sync.Once

// New creates a JSON logger writing to stdout at the given level.
// Returns an error if the log level string cannot be parsed.
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	// package-level zerolog settings, shared by every logger
	setupOnce.Do(func() {
		zerolog.TimestampFunc = func() time.Time {
			return time.Now().UTC()
		}
	})

	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Ctx extracts a logger from the context.
// Returns the disabled logger if none was attached.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
