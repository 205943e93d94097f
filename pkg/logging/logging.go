// Package logging routes log/slog output to a file while the terminal is
// owned by the UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
)

var openFile = func(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init installs the default slog logger. An empty path discards all output.
func Init(path string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	SetDebug(debug)
	closeFile()

	var w io.Writer = io.Discard
	if path != "" {
		f, err := openFile(path)
		if err != nil {
			slog.SetDefault(newLogger(io.Discard))
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		logFile = f
		w = f
	}
	slog.SetDefault(newLogger(w))
	if path != "" {
		slog.Info("Logger initialized", "path", path, "debug", debug)
	}
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Close flushes and closes the log file, leaving a discarding logger behind.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	slog.SetDefault(newLogger(io.Discard))
}

func closeFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
