// Package diagnostics provides the leveled run narration this program
// writes to stderr, the same log.Printf-per-phase style the backend
// this module grew out of uses in its request handlers, gated by a
// verbosity the backend never needed because it only ever ran at one
// level.
package diagnostics

import (
	"io"
	"log"
	"os"
)

// Level is the run's narration verbosity.
type Level int

const (
	Quiet Level = iota
	Info
	Debug
)

// ParseLevel maps "quiet"/"info"/"debug" to a Level, defaulting to
// Info for any other value.
func ParseLevel(s string) Level {
	switch s {
	case "quiet":
		return Quiet
	case "debug":
		return Debug
	default:
		return Info
	}
}

// Logger narrates the run's phases at Info level and fine-grained
// per-request detail at Debug level; at Quiet it stays silent.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a Logger writing to stderr at the given level.
func New(level Level) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

// NewTo returns a Logger writing to w at the given level, bypassing
// stderr. Used by tests that need to inspect narration output.
func NewTo(level Level, w io.Writer) *Logger {
	return &Logger{level: level, out: log.New(w, "", 0)}
}

func (l *Logger) Info(msg string) {
	if l.level >= Info {
		l.out.Println(msg)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= Info {
		l.out.Printf(format, args...)
	}
}

func (l *Logger) Debug(msg string) {
	if l.level >= Debug {
		l.out.Println(msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= Debug {
		l.out.Printf(format, args...)
	}
}

// Fatalf logs unconditionally and terminates the process, matching
// the backend's own use of log.Fatalf for unrecoverable startup
// failures.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.out.Fatalf(format, args...)
}
