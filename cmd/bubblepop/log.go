package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command line logger.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "bubblepop",
	})
}

// gameLogger returns the logger used while a game owns the terminal. Output
// would corrupt the screen, so it goes to --log-file or nowhere.
func gameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l := newLogger(f, flagVerbose)
	l.Info("log opened", "at", time.Now().Format(time.RFC3339))
	return l, func() { f.Close() }, nil
}
