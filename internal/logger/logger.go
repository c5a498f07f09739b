package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the engine log file, relative to the working directory.
const DefaultPath = "logs/starsystem.txt"

// Logger appends timestamped lines to a file on disk and mirrors them in
// memory for the console overlay.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to path (DefaultPath when empty) and ensures
// the directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path}
}

// Log appends a line, prefixed with a wall-clock timestamp.
func (l *Logger) Log(line string) {
	stamped := "[" + time.Now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
