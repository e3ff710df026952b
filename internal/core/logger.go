package core

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

var (
	// Lazy-load and ensure a single instance
	loggerOnce      sync.Once
	loggerSingleton *Logger
)

type VerboseLevel int

const (
	VerboseOff VerboseLevel = iota
	VerboseInfo
	VerboseDebug
	VerboseTrace
)

func CurrentLogger() *Logger {
	loggerOnce.Do(func() {
		loggerSingleton = NewLogger()
	})
	return loggerSingleton
}

type Logger struct {
	verbose VerboseLevel
	out     *log.Logger
}

func NewLogger() *Logger {
	return &Logger{
		verbose: VerboseOff,
		out:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetVerboseLevel overrides the default verbose level
func (l *Logger) SetVerboseLevel(level VerboseLevel) *Logger {
	l.verbose = level
	return l
}

// SetOutput redirects messages (stderr by default).
func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.out.SetOutput(w)
	return l
}

// Enabled reports whether messages at the given level are printed.
func (l *Logger) Enabled(level VerboseLevel) bool {
	return l.verbose >= level
}

func (l *Logger) Warn(v ...any) {
	l.out.Println(v...)
}
func (l *Logger) Warnf(format string, v ...any) {
	l.out.Printf(format, v...)
}

func (l *Logger) Info(v ...any) {
	if l.Enabled(VerboseInfo) {
		l.out.Println(v...)
	}
}
func (l *Logger) Infof(format string, v ...any) {
	if l.Enabled(VerboseInfo) {
		l.out.Printf(format, v...)
	}
}

func (l *Logger) Debug(v ...any) {
	if l.Enabled(VerboseDebug) {
		l.out.Println(v...)
	}
}
func (l *Logger) Debugf(format string, v ...any) {
	if l.Enabled(VerboseDebug) {
		l.out.Printf(format, v...)
	}
}

func (l *Logger) Trace(v ...any) {
	if l.Enabled(VerboseTrace) {
		l.out.Println(v...)
	}
}
func (l *Logger) Tracef(format string, v ...any) {
	if l.Enabled(VerboseTrace) {
		l.out.Printf(format, v...)
	}
}

// Dump prints a deep representation of a value in trace mode.
func (l *Logger) Dump(label string, value any) {
	if l.Enabled(VerboseTrace) {
		l.out.Printf("%s:\n%s", label, spew.Sdump(value))
	}
}
