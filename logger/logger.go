package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Permission reports whether a caller is allowed to log. This matches the
// teacher's permission-gated logging convention; most callers pass Allow.
type Permission interface {
	AllowLogging() bool
}

type allowAll struct{}

func (allowAll) AllowLogging() bool { return true }

// Allow is the permission value used by ordinary, unconditional log calls.
var Allow Permission = allowAll{}

// Logger is a bounded ring buffer of formatted log lines, mirrored into a
// structured zerolog sink for operational use.
type Logger struct {
	mu       sync.Mutex
	capacity int
	entries  []string
	zl       zerolog.Logger
}

// NewLogger creates a Logger holding at most capacity entries; older entries
// are dropped once capacity is exceeded.
func NewLogger(capacity int) *Logger {
	return &Logger{
		capacity: capacity,
		zl:       zerolog.New(io.Discard).With().Timestamp().Logger(),
	}
}

// SetOutput redirects the structured zerolog sink. The ring buffer used by
// Write/Tail is unaffected.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = zerolog.New(w).With().Timestamp().Logger()
}

func formatDetail(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Log records tag: detail, if permission allows it.
func (l *Logger) Log(permission Permission, tag string, detail interface{}) {
	if !permission.AllowLogging() {
		return
	}

	msg := formatDetail(detail)

	l.mu.Lock()
	l.entries = append(l.entries, tag+": "+msg)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	zl := l.zl
	l.mu.Unlock()

	zl.Debug().Str("tag", tag).Msg(msg)
}

// Logf is Log with a format string.
func (l *Logger) Logf(permission Permission, tag string, format string, args ...interface{}) {
	l.Log(permission, tag, fmt.Sprintf(format, args...))
}

// Clear empties the ring buffer.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Write writes every buffered entry to w, one per line.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	entries := append([]string(nil), l.entries...)
	l.mu.Unlock()

	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
}

// Tail writes the last n buffered entries to w, one per line.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	entries := append([]string(nil), l.entries...)
	l.mu.Unlock()

	if n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
}

// global is the package-level logger used by Log/Logf/Write/Tail/Clear.
var global = NewLogger(1000)

// Log records tag: detail on the package-level logger, unconditionally.
func Log(tag string, detail interface{}) {
	global.Log(Allow, tag, detail)
}

// Logf is Log with a format string.
func Logf(tag string, format string, args ...interface{}) {
	global.Logf(Allow, tag, format, args...)
}

// Write writes the package-level logger's buffered entries to w.
func Write(w io.Writer) {
	global.Write(w)
}

// Tail writes the package-level logger's last n buffered entries to w.
func Tail(w io.Writer, n int) {
	global.Tail(w, n)
}

// Clear empties the package-level logger's buffer.
func Clear() {
	global.Clear()
}

// SetOutput redirects the package-level logger's structured zerolog sink.
func SetOutput(w io.Writer) {
	global.SetOutput(w)
}
