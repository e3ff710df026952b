package mdwt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julien-sobczak/mdwt/internal/mdwt"
	"github.com/julien-sobczak/mdwt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	dir := testutil.SetUpFromGoldenDirNamed(t, "TestBuild/Guide")
	entry := filepath.Join(dir, "README.src.md")

	t.Run("With headers", func(t *testing.T) {
		result, err := mdwt.Build(entry, mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Empty(t, result.Diagnostics)
		assert.Empty(t, result.Summary())
		assert.Equal(t, string(testutil.GoldenFileNamed(t, "TestBuild/Guide/expected.md")), result.Content)
		assert.ElementsMatch(t, []string{"guide", "install"}, result.Variables["tags"].Items())
	})

	t.Run("Skip headers", func(t *testing.T) {
		result, err := mdwt.Build(entry, mdwt.Options{WorkingDir: dir, SkipHeaders: true})
		require.NoError(t, err)
		assert.Equal(t, string(testutil.GoldenFileNamed(t, "TestBuild/Guide/expected.skipheaders.md")), result.Content)
	})

	t.Run("Relative entry path", func(t *testing.T) {
		result, err := mdwt.Build("README.src.md", mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, string(testutil.GoldenFileNamed(t, "TestBuild/Guide/expected.md")), result.Content)
	})

	t.Run("Idempotence", func(t *testing.T) {
		result, err := mdwt.Build(entry, mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)

		output := filepath.Join(dir, "README.md")
		require.NoError(t, os.WriteFile(output, []byte(result.Content), 0644))

		again, err := mdwt.Build(output, mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, result.Content, again.Content)
	})
}

func TestBuildEdition(t *testing.T) {
	for _, edition := range []string{"pro", "free", "team"} {
		t.Run(edition, func(t *testing.T) {
			dir := testutil.SetUpFromFiles(t, map[string]string{
				"main.md": "---\nedition: " + edition + "\n---\n\n{!if edition=pro!}A{!else!}B{!endif!}\n",
			})
			result, err := mdwt.Build(filepath.Join(dir, "main.md"), mdwt.Options{WorkingDir: dir, SkipHeaders: true})
			require.NoError(t, err)
			if edition == "pro" {
				assert.Equal(t, "A\n", result.Content)
			} else {
				assert.Equal(t, "B\n", result.Content)
			}
		})
	}
}

func TestBuildVariableMerge(t *testing.T) {

	t.Run("Scalar", func(t *testing.T) {
		dir := testutil.SetUpFromFiles(t, map[string]string{
			"main.md":  "---\nenv: prod\n---\n\n{!include(child.md)!}\n\nEnv={!var(env)!}\n",
			"child.md": "---\nenv: dev\n---\n\nChild env={!var(env)!}\n",
		})
		result, err := mdwt.Build(filepath.Join(dir, "main.md"), mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, "---\nenv: prod\n---\n\nChild env=prod\n\nEnv=prod\n", result.Content)
	})

	t.Run("List", func(t *testing.T) {
		dir := testutil.SetUpFromFiles(t, map[string]string{
			"main.md":  "---\ntags:\n  - a\n---\n\n{!include(child.md)!}\n",
			"child.md": "---\ntags:\n  - b\n  - a\n---\n\nChild\n",
		})
		result, err := mdwt.Build(filepath.Join(dir, "main.md"), mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, result.Variables["tags"].Items())
		assert.Contains(t, result.Content, "tags:\n  - ")
		assert.Contains(t, result.Content, "\n\nChild\n")
	})
}

func TestBuildErrors(t *testing.T) {

	t.Run("Undefined variable", func(t *testing.T) {
		dir := testutil.SetUpFromFiles(t, map[string]string{
			"main.md": "# Title\n\n{!var(ghost)!}\n",
		})
		path := filepath.Join(dir, "main.md")
		result, err := mdwt.Build(path, mdwt.Options{WorkingDir: dir})
		assert.ErrorIs(t, err, mdwt.ErrUndefinedVariable)
		expected := `Variable "ghost" is used but not declared or null (referenced in ` + path + `).`
		assert.Equal(t, []string{expected}, result.Diagnostics)
		assert.Equal(t, "Completed with 1 error(s):\n1. "+expected, result.Summary())
	})

	t.Run("Missing entry", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "missing.md")
		result, err := mdwt.Build(path, mdwt.Options{WorkingDir: dir})
		assert.ErrorIs(t, err, mdwt.ErrFileNotFound)
		assert.Equal(t, []string{"File not found: " + path}, result.Diagnostics)
	})

	t.Run("No entry", func(t *testing.T) {
		result, err := mdwt.Build(" ", mdwt.Options{WorkingDir: t.TempDir()})
		assert.ErrorIs(t, err, mdwt.ErrSyntax)
		assert.Equal(t, []string{"An entry markdown file must be provided."}, result.Diagnostics)
		assert.Equal(t, "Completed with 1 error(s):\n1. An entry markdown file must be provided.", result.Summary())
	})

	t.Run("Same missing include twice", func(t *testing.T) {
		dir := testutil.SetUpFromFiles(t, map[string]string{
			"main.md": "{!include(a.md)!}\n\n{!include(a.md)!}\n",
		})
		result, err := mdwt.Build(filepath.Join(dir, "main.md"), mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, "<!-- missing a.md (from main.md) -->\n\n<!-- missing a.md (from main.md) -->\n", result.Content)
		assert.Equal(t, []string{"Included file not found: a.md (included from main.md)"}, result.Diagnostics)
	})

	t.Run("Missing includes keep the build going", func(t *testing.T) {
		dir := testutil.SetUpFromFiles(t, map[string]string{
			"main.md": "{!include(a.md)!}\n{!include(b.md)!}\n",
		})
		result, err := mdwt.Build(filepath.Join(dir, "main.md"), mdwt.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, "<!-- missing a.md (from main.md) -->\n<!-- missing b.md (from main.md) -->\n", result.Content)
		assert.Equal(t, ""+
			"Completed with 2 error(s):\n"+
			"1. Included file not found: a.md (included from main.md)\n"+
			"2. Included file not found: b.md (included from main.md)", result.Summary())
	})
}
