package mdwt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julien-sobczak/mdwt/internal/core"
)

// Kinds of fatal errors, usable with errors.Is.
var (
	ErrCircularInclude   = errors.New("circular include")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrSyntax            = errors.New("invalid directive")
	ErrFileNotFound      = errors.New("file not found")
)

// Error is a fatal build error. The message is the one recorded in the diagnostics.
type Error struct {
	Kind    error
	Message string
	File    string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// Session holds the state of a single build.
// Diagnostics are appended by every step and never shared between builds.
type Session struct {
	// Directory used to display relative paths in diagnostics
	WorkingDir string
	// Replace local images by data URIs
	InlineImages bool

	diagnostics []string
	seen        map[string]bool
}

// NewSession creates an empty session. Relative paths are computed from workingDir,
// or from the current directory when empty.
func NewSession(workingDir string) *Session {
	if workingDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			workingDir = cwd
		}
	}
	return &Session{
		WorkingDir: workingDir,
		seen:       make(map[string]bool),
	}
}

// Record appends a non-fatal diagnostic. Identical messages are reported once.
func (s *Session) Record(message string) {
	if s.seen[message] {
		return
	}
	s.seen[message] = true
	s.diagnostics = append(s.diagnostics, message)
	core.CurrentLogger().Debugf("Diagnostic recorded: %s", message)
}

// Fail records a fatal diagnostic and returns the corresponding error.
func (s *Session) Fail(kind error, file string, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	s.Record(message)
	return &Error{
		Kind:    kind,
		Message: message,
		File:    file,
	}
}

// Wrap is similar to Fail but keeps the underlying cause.
func (s *Session) Wrap(kind error, file string, cause error, format string, args ...any) error {
	err := s.Fail(kind, file, format, args...)
	err.(*Error).cause = cause
	return err
}

// Diagnostics returns the recorded messages in order.
func (s *Session) Diagnostics() []string {
	return append([]string{}, s.diagnostics...)
}

// Rel returns the path relative to the working directory when possible.
func (s *Session) Rel(path string) string {
	if s.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(s.WorkingDir, path)
	if err != nil || rel == "." {
		return path
	}
	return rel
}

// Summary formats diagnostics as a numbered list. It returns an empty string when there is none.
func Summary(diagnostics []string) string {
	if len(diagnostics) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completed with %d error(s):", len(diagnostics)))
	for i, message := range diagnostics {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, message))
	}
	return sb.String()
}
