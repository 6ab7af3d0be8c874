// Package logging routes zerolog output to a file; the terminal belongs to
// the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at path with the given level name and
// returns the file to close on exit.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	log.Logger = New(f, lvl)
	zerolog.SetGlobalLevel(lvl)
	return f, nil
}

// New builds a timestamped logger writing to w.
func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Discard silences the global logger, for when no log file can be opened.
func Discard() {
	log.Logger = zerolog.Nop()
}
