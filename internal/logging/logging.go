// Package logging provides the shared debug logger.
//
// Interactive commands own stdout/stderr, so diagnostic logging goes
// to a rotating file next to the database instead of the terminal.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	output io.Writer
)

// SetFile routes log output to the given file with rotation. Called
// once at startup; before that, loggers write to stderr.
func SetFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	output = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}
}

// DefaultFile returns the log location for a database path:
// a brag.log sibling of the database file.
func DefaultFile(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "brag.log")
}

// Default returns a logger with the given prefix writing to the
// configured destination.
func Default(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	w := output
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, prefix, log.LstdFlags)
}
