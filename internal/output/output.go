package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// Special destinations accepted by Resolve.
const (
	Stdout    = "-"
	Clipboard = "clipboard"
	// Alias kept for users coming from macOS
	pbcopy = "pbcopy"
)

// Sink receives a generated document.
type Sink interface {
	Write(content string) error
	String() string
}

// Copier is the system clipboard.
type Copier interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard uses the native clipboard tools (pbcopy, xclip, xsel, wl-copy...).
var SystemClipboard Copier = systemClipboard{}

// Resolve returns the sink matching the destination.
// An empty destination or "-" means the standard output.
func Resolve(destination string) Sink {
	switch strings.TrimSpace(destination) {
	case "", Stdout:
		return NewWriterSink(os.Stdout)
	case Clipboard, pbcopy:
		return NewClipboardSink(SystemClipboard)
	default:
		return NewFileSink(destination)
	}
}

/* Writer */

// WriterSink prints the document on a writer, typically the standard output.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Write(content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(s.w, content)
	return err
}

func (s *WriterSink) String() string {
	return "stdout"
}

/* File */

// FileSink writes the document to a file, creating missing parent directories.
type FileSink struct {
	Path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Write(content string) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileSink) String() string {
	return s.Path
}

/* Clipboard */

// ClipboardSink copies the document into the clipboard.
type ClipboardSink struct {
	copier Copier
}

func NewClipboardSink(copier Copier) *ClipboardSink {
	return &ClipboardSink{copier: copier}
}

func (s *ClipboardSink) Write(content string) error {
	if clipboard.Unsupported && s.copier == SystemClipboard {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return s.copier.WriteAll(content)
}

func (s *ClipboardSink) String() string {
	return "clipboard"
}
