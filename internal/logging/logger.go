// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // DEBUG, INFO, WARNING, ERROR, CRITICAL (case-insensitive)
	Pretty bool      // human-readable console output instead of JSON lines
	Redact bool      // scrub bearer tokens and passwords
	Out    io.Writer // defaults to os.Stderr
}

var levels = map[string]zerolog.Level{
	"DEBUG":    zerolog.DebugLevel,
	"INFO":     zerolog.InfoLevel,
	"WARNING":  zerolog.WarnLevel,
	"WARN":     zerolog.WarnLevel,
	"ERROR":    zerolog.ErrorLevel,
	"CRITICAL": zerolog.FatalLevel,
}

// ParseLevel converts a level name to a zerolog level.
// An empty name means info; an unrecognized one lets everything through.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel
	}
	if level, ok := levels[name]; ok {
		return level
	}
	return zerolog.TraceLevel
}

// New builds a logger from cfg and installs it as the global log.Logger.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = cfg.Out
	if w == nil {
		w = os.Stderr
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	if cfg.Redact {
		w = NewRedactor().Wrap(w)
	}

	logger := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	return logger
}
