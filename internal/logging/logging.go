// Package logging provides the leveled logger threaded through the build
// pipeline.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Format is "json" or "pretty". Pretty output goes through the zerolog
	// console writer.
	Format string

	// Output defaults to stderr.
	Output io.Writer
}

// Logger wraps a zerolog logger behind the printf-style interface the rest
// of the codebase uses.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger constructs a logger from the given config.
func NewLogger(c Config) (*Logger, error) {
	out := c.Output
	if out == nil {
		out = os.Stderr
	}
	if c.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level := zerolog.InfoLevel
	switch c.Level {
	case "", LevelInfo:
	case LevelDebug:
		level = zerolog.DebugLevel
	case LevelWarn:
		level = zerolog.WarnLevel
	case LevelError:
		level = zerolog.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", c.Level)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{logger: logger}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithPackage returns a logger annotating every event with the package name.
func (l *Logger) WithPackage(name string) *Logger {
	return &Logger{logger: l.logger.With().Str("package", name).Logger()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}
