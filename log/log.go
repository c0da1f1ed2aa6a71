// Package log is a small levelled logger. Commands write their results to
// stdout, so log output goes to its own writer, usually a file.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

// DefaultFilepath is where the CLI writes its log when debugging is enabled.
const DefaultFilepath = "/tmp/bevyml.log"

var (
	debugPrefix = color.New(color.FgCyan).SprintFunc()
	infoPrefix  = color.New(color.FgWhite, color.BgGreen).SprintFunc()
	warnPrefix  = color.New(color.FgWhite, color.BgYellow).SprintFunc()
	errorPrefix = color.New(color.FgRed).SprintFunc()
)

// Logger writes levelled messages to a writer. A nil *Logger discards
// everything, so callers never need to check before logging.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
}

// New creates a logger writing to w. Debug messages and struct dumps are only
// written when debug is true.
func New(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{out: w, debug: debug}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, false)
}

// SetupFile opens (truncating) the log file at path and returns a logger
// writing to it together with a clean up function. When enabled is false the
// returned logger discards everything and no file is touched.
func SetupFile(path string, enabled bool) (*Logger, func(), error) {
	if !enabled {
		return Discard(), func() {}, nil
	}
	_ = os.Remove(path)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return Discard(), func() {}, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return New(file, true), func() { file.Close() }, nil
}

// DebugEnabled reports whether debug messages are written.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

func (l *Logger) Debugf(format string, a ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.write(debugPrefix("[DEBUG]"), format, a...)
}

func (l *Logger) Infof(format string, a ...any) {
	l.write(infoPrefix("[INFO] "), format, a...)
}

func (l *Logger) Warnf(format string, a ...any) {
	l.write(warnPrefix("[WARN] "), format, a...)
}

func (l *Logger) Errorf(format string, a ...any) {
	l.write(errorPrefix("[ERROR]"), format, a...)
}

// Dump writes a deep dump of values at debug level.
func (l *Logger) Dump(a ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, spew.Sdump(a...))
}

func (l *Logger) write(prefix, format string, a ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, a...))
}
