// SPDX-License-Identifier: GPL-3.0-or-later

// Package logger provides a small ring-buffered log. Entries are tagged with
// the subsystem that produced them and gated by an optional Permission, so a
// noisy subsystem can be silenced by a caller without touching the log call
// site itself. A package-level default Logger is provided for convenience;
// most of the core logs through it rather than carrying a *Logger around.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission decides, at the moment of logging, whether an entry should be
// kept. The decision is re-evaluated on every call, so a Permission backed by
// mutable state (a "debug logging enabled" flag, say) works as expected.
type Permission interface {
	AllowLogging() bool
}

type allowAlways struct{}

func (allowAlways) AllowLogging() bool { return true }

// Allow is the Permission that always logs.
var Allow Permission = allowAlways{}

type entry struct {
	tag     string
	message string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.message)
}

// Logger is a ring-buffered, permission-gated log.
type Logger struct {
	mu      sync.Mutex
	size    int
	entries []entry
}

// NewLogger creates a Logger that retains at most size entries.
func NewLogger(size int) *Logger {
	if size <= 0 {
		size = 1
	}
	return &Logger{size: size}
}

func detailString(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Log appends a new entry tagged with tag, provided permission allows it.
// detail is rendered according to its type: error and fmt.Stringer are
// unwrapped, everything else falls back to the %v verb.
func (l *Logger) Log(permission Permission, tag string, detail interface{}) {
	if permission != nil && !permission.AllowLogging() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry{tag: tag, message: detailString(detail)})
	if len(l.entries) > l.size {
		l.entries = l.entries[len(l.entries)-l.size:]
	}
}

// Logf is like Log but formats detail with fmt.Sprintf first.
func (l *Logger) Logf(permission Permission, tag, format string, args ...interface{}) {
	l.Log(permission, tag, fmt.Sprintf(format, args...))
}

// Clear empties the log.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Write writes every entry currently in the log to w, one per line.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s strings.Builder
	for _, e := range l.entries {
		s.WriteString(e.String())
		s.WriteRune('\n')
	}
	io.WriteString(w, s.String())
}

// Tail writes at most the last n entries to w. Asking for more entries than
// exist, or zero entries, is not an error.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || len(l.entries) == 0 {
		return
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}

	var s strings.Builder
	for _, e := range l.entries[len(l.entries)-n:] {
		s.WriteString(e.String())
		s.WriteRune('\n')
	}
	io.WriteString(w, s.String())
}

const defaultSize = 1024

var global = NewLogger(defaultSize)

// Log logs to the package-level default Logger.
func Log(permission Permission, tag string, detail interface{}) { global.Log(permission, tag, detail) }

// Logf logs to the package-level default Logger.
func Logf(permission Permission, tag, format string, args ...interface{}) {
	global.Logf(permission, tag, format, args...)
}

// Clear empties the package-level default Logger.
func Clear() { global.Clear() }

// Write writes the package-level default Logger's entries to w.
func Write(w io.Writer) { global.Write(w) }

// Tail writes the last n entries of the package-level default Logger to w.
func Tail(w io.Writer, n int) { global.Tail(w, n) }
