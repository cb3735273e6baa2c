// Package logging sets up the process logger. The TUI owns the terminal, so
// logs go to a file in the cache directory unless asked otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileName is the log file created in the cache directory.
const FileName = "billtracker.log"

// Options selects the log destination and level.
type Options struct {
	// Dir receives FileName. Ignored when Path is set.
	Dir string
	// Path overrides the destination. "-" means stderr.
	Path    string
	Verbose bool
}

// Setup returns a logger and a function that closes its destination.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	var (
		w       io.Writer
		closeFn = func() error { return nil }
	)
	switch opts.Path {
	case "-":
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	default:
		path := opts.Path
		if path == "" {
			path = filepath.Join(opts.Dir, FileName)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closeFn, nil
}
