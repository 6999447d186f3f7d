// Package logging provides the structured logger used across cylc-layer.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// Logger is the leveled, key-value logger passed to components.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Config controls logger construction.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

// New builds a Logger writing to cfg.Output (stderr when nil).
func New(cfg Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "cl",
	})
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatText:
		l.SetFormatter(charmlog.TextFormatter)
	case FormatJSON:
		l.SetFormatter(charmlog.JSONFormatter)
	case FormatLogfmt:
		l.SetFormatter(charmlog.LogfmtFormatter)
	default:
		return nil, fmt.Errorf(messages.LoggingUnknownFormatFmt, cfg.Format)
	}
	return &charmLogger{l: l}, nil
}

// ParseLevel maps a config level name to a charm log level. Empty means info.
func ParseLevel(level string) (charmlog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return charmlog.InfoLevel, nil
	}
	parsed, err := charmlog.ParseLevel(trimmed)
	if err != nil {
		return charmlog.InfoLevel, fmt.Errorf(messages.LoggingUnknownLevelFmt, level)
	}
	return parsed, nil
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText, FormatJSON, FormatLogfmt:
		return true
	}
	return false
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
