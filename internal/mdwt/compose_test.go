package mdwt

import (
	"path/filepath"
	"testing"

	"github.com/julien-sobczak/mdwt/internal/markdown"
	"github.com/julien-sobczak/mdwt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	root := markdown.Variables{
		"title": markdown.Scalar("Guide"),
		"tags":  markdown.List("b", "a"),
	}

	var tests = []struct {
		name        string
		body        markdown.Document
		original    markdown.FrontMatter
		root        markdown.Variables
		skipHeaders bool
		expected    markdown.Document
	}{
		{
			name:     "Regenerated front matter",
			body:     "# Guide  \n\n\n\nText",
			root:     root,
			expected: "---\ntags:\n  - b\n  - a\ntitle: Guide\n---\n\n# Guide\n\nText\n",
		},
		{
			name:        "Skip headers",
			body:        "# Guide\n",
			original:    "---\ntitle: Guide\n---\n\n",
			root:        root,
			skipHeaders: true,
			expected:    "# Guide\n",
		},
		{
			name:     "Empty scope keeps the original block",
			body:     "Body\n",
			original: "---\n# nothing\n---\n\n",
			root:     markdown.Variables{},
			expected: "---\n# nothing\n---\n\nBody\n",
		},
		{
			name:     "Byte order mark and Windows newlines",
			body:     "# Guide\r\n",
			original: "\uFEFF---\r\ntitle: Old\r\n---\r\n\r\n",
			root:     markdown.Variables{"title": markdown.Scalar("Guide")},
			expected: "\uFEFF---\r\ntitle: Guide\r\n---\r\n\r\n# Guide\r\n",
		},
		{
			name:     "Empty document",
			body:     "",
			root:     markdown.Variables{},
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compose(tt.body, tt.original, tt.root, tt.skipHeaders))
		})
	}
}

func TestInlineImages(t *testing.T) {
	dir := testutil.SetUpFromFiles(t, map[string]string{
		"main.md":         "![Logo](images/logo.png \"The logo\")\n{!include(sub/child.md)!}\n![Remote](https://example.com/a.png)\n![Gone](missing.png)\n",
		"images/logo.png": "PNG",
		"sub/child.md":    "![Icon](<icon.svg>)\n```\n![Code](icon.svg)\n```\n",
		"sub/icon.svg":    "<svg/>",
	})
	result, err := Build(filepath.Join(dir, "main.md"), Options{WorkingDir: dir, InlineImages: true})
	require.NoError(t, err)
	assert.Equal(t, ""+
		"![Logo](data:image/png;base64,UE5H \"The logo\")\n"+
		"![Icon](data:image/svg+xml;base64,PHN2Zy8+)\n"+
		"```\n"+
		"![Code](icon.svg)\n"+
		"```\n"+
		"\n"+
		"![Remote](https://example.com/a.png)\n"+
		"![Gone](missing.png)\n", result.Content)

	// Disabled by default
	result, err = Build(filepath.Join(dir, "main.md"), Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "![Logo](images/logo.png \"The logo\")")
}
