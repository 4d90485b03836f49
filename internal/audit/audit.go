// Package audit appends timestamped, leveled lines to the audit log file.
package audit

import (
	"fmt"
	"os"
	"time"
)

// timeFormat is the timestamp layout used in every log line.
const timeFormat = "2006-01-02 15:04:05"

// Logger records audit events. Implementations must never return or
// propagate an error: logging is best-effort and must not abort the
// operation being logged.
type Logger interface {
	Info(msg string)
	Error(msg string)
}

// FileLogger appends one line per event to the audit file, creating it
// on first use. Every write failure is discarded. There is no rotation
// and no size bound.
type FileLogger struct {
	path string
	now  func() time.Time
}

// NewFileLogger creates a FileLogger appending to the file at path.
func NewFileLogger(path string) *FileLogger {
	return &FileLogger{path: path, now: time.Now}
}

// Info appends an INFO line.
func (l *FileLogger) Info(msg string) {
	l.append("INFO", msg)
}

// Error appends an ERROR line.
func (l *FileLogger) Error(msg string) {
	l.append("ERROR", msg)
}

// append writes a single formatted line, swallowing every failure.
func (l *FileLogger) append(level, msg string) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintf(f, "[%s] [%s] %s\n", l.now().Format(timeFormat), level, msg)
}

// Nop is a Logger that records nothing.
type Nop struct{}

// Info discards the message.
func (Nop) Info(string) {}

// Error discards the message.
func (Nop) Error(string) {}
