package mdwt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {

	t.Run("Record", func(t *testing.T) {
		s := NewSession(t.TempDir())
		s.Record("first")
		s.Record("second")
		s.Record("first")
		assert.Equal(t, []string{"first", "second"}, s.Diagnostics())
	})

	t.Run("Fail", func(t *testing.T) {
		s := NewSession(t.TempDir())
		err := s.Fail(ErrSyntax, "doc.md", "Invalid %s", "thing")
		assert.EqualError(t, err, "Invalid thing")
		assert.ErrorIs(t, err, ErrSyntax)
		assert.NotErrorIs(t, err, ErrCircularInclude)

		var buildErr *Error
		require.True(t, errors.As(err, &buildErr))
		assert.Equal(t, "doc.md", buildErr.File)
		assert.Equal(t, []string{"Invalid thing"}, s.Diagnostics())
	})

	t.Run("Wrap", func(t *testing.T) {
		s := NewSession(t.TempDir())
		err := s.Wrap(ErrFileNotFound, "doc.md", os.ErrNotExist, "Unable to read doc.md")
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Rel", func(t *testing.T) {
		dir := t.TempDir()
		s := NewSession(dir)
		assert.Equal(t, filepath.Join("docs", "a.md"), s.Rel(filepath.Join(dir, "docs", "a.md")))
		assert.Equal(t, dir, s.Rel(dir))
	})

	t.Run("Default working directory", func(t *testing.T) {
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, NewSession("").WorkingDir)
	})
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "Completed with 2 error(s):\n1. first\n2. second", Summary([]string{"first", "second"}))
}
