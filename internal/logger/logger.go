// Package logger provides verbose logging for the reader.
// When verbose mode is enabled via the --verbose flag, messages are
// written to stderr so users can follow searches, session changes and
// clipboard failures. Output is silent otherwise.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

func emit(level, scope, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	prefix := "[" + level + "] "
	if scope != "" {
		prefix += scope + ": "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a debug message.
func Debug(format string, args ...any) { emit("DEBUG", "", format, args...) }

// Info prints an informational message.
func Info(format string, args ...any) { emit("INFO", "", format, args...) }

// Warn prints a warning. Warnings cover recoverable failures such as an
// unavailable clipboard and are never surfaced as errors.
func Warn(format string, args ...any) { emit("WARN", "", format, args...) }

// Section prints a section header.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scope is a named logger; its messages carry the scope name.
type Scope string

// Debug prints a debug message in the scope.
func (s Scope) Debug(format string, args ...any) { emit("DEBUG", string(s), format, args...) }

// Info prints an informational message in the scope.
func (s Scope) Info(format string, args ...any) { emit("INFO", string(s), format, args...) }

// Warn prints a warning in the scope.
func (s Scope) Warn(format string, args ...any) { emit("WARN", string(s), format, args...) }

// Timed logs how long an operation took when the returned func is called.
//
//	defer logger.Scope("search").Timed("query %q", q)()
func (s Scope) Timed(format string, args ...any) func() {
	start := time.Now()
	msg := fmt.Sprintf(format, args...)
	return func() {
		emit("DEBUG", string(s), "%s took %s", msg, time.Since(start).Round(time.Millisecond))
	}
}
