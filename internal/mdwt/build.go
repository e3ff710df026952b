package mdwt

import (
	"path/filepath"
	"strings"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/markdown"
)

// Options control a build.
type Options struct {
	// Omit the front matter in the output
	SkipHeaders bool
	// Replace local images by base64 data URIs
	InlineImages bool
	// Directory used to resolve the entry path and to display paths in diagnostics.
	// Default to the current directory.
	WorkingDir string
}

// Result is the outcome of a build.
type Result struct {
	Content     string
	Variables   markdown.Variables // root scope
	Diagnostics []string
}

// Summary returns the diagnostics report, or an empty string when the build was clean.
func (r *Result) Summary() string {
	return Summary(r.Diagnostics)
}

// Build expands the directives of the entry document into a single Markdown document.
//
// Missing includes are reported in the diagnostics without failing the build.
// Any other problem aborts the build with an *Error. The result is returned
// in both cases so that callers can report the diagnostics.
func Build(path string, options Options) (*Result, error) {
	session := NewSession(options.WorkingDir)
	session.InlineImages = options.InlineImages

	content, root, err := session.build(path, options)
	result := &Result{
		Content:     string(content),
		Variables:   root,
		Diagnostics: session.Diagnostics(),
	}
	return result, err
}

func (s *Session) build(path string, options Options) (markdown.Document, markdown.Variables, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil, s.Fail(ErrSyntax, "", "An entry markdown file must be provided.")
	}

	entryPath := resolvePath(s.WorkingDir, path)
	if !filepath.IsAbs(entryPath) {
		if abs, err := filepath.Abs(entryPath); err == nil {
			entryPath = abs
		}
	}

	root, err := s.CollectVariables(entryPath, nil, markdown.Variables{})
	if err != nil {
		return "", nil, err
	}
	core.CurrentLogger().Dump("Root variables", root.AsMap())

	file, err := s.readFile(entryPath)
	if err != nil {
		return "", root, err
	}

	body, err := s.processContent(file.Body, frame{
		dir:   file.Dir(),
		stack: []string{entryPath},
		vars:  Merge(file.Variables(), markdown.Variables{}),
		root:  root,
	})
	if err != nil {
		return "", root, err
	}

	body, err = s.ProcessLists(body, entryPath)
	if err != nil {
		return "", root, err
	}

	return Compose(body, file.FrontMatter, root, options.SkipHeaders), root, nil
}
