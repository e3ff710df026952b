package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julien-sobczak/mdwt/internal/output"
	"gotest.tools/assert"
)

type fakeClipboard struct {
	content string
	err     error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.content = text
	return nil
}

func TestResolve(t *testing.T) {
	var tests = []struct {
		destination string
		expected    string
	}{
		{"", "stdout"},
		{"-", "stdout"},
		{"clipboard", "clipboard"},
		{"pbcopy", "clipboard"},
		{"build/README.md", "build/README.md"},
	}
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			assert.Equal(t, tt.expected, output.Resolve(tt.destination).String())
		})
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := output.NewWriterSink(&buf)

	assert.NilError(t, sink.Write("# Guide"))
	assert.NilError(t, sink.Write("Text\n"))
	assert.Equal(t, "# Guide\nText\n", buf.String())
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", "docs", "README.md")
	sink := output.NewFileSink(path)

	assert.NilError(t, sink.Write("# Guide\n"))
	content, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, "# Guide\n", string(content))

	// Overwrite
	assert.NilError(t, sink.Write("# Other\n"))
	content, err = os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, "# Other\n", string(content))
}

func TestClipboardSink(t *testing.T) {
	fake := &fakeClipboard{}
	sink := output.NewClipboardSink(fake)
	assert.NilError(t, sink.Write("# Guide\n"))
	assert.Equal(t, "# Guide\n", fake.content)

	failing := output.NewClipboardSink(&fakeClipboard{err: errors.New("no display")})
	assert.Error(t, failing.Write("# Guide\n"), "no display")
}
