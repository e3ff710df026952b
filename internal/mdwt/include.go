package mdwt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/markdown"
	"golang.org/x/exp/slices"
)

// IncludeDirective is the parsed argument of {!include(path|section|level)!}.
// Empty segments are left empty.
type IncludeDirective struct {
	Path         string
	SectionTitle string
	TargetLevel  string
}

// splitDirective splits on the first two pipes. Extra pipes belong to the last segment.
func splitDirective(raw string) [3]string {
	var segments [3]string
	parts := strings.SplitN(raw, "|", 3)
	for i, part := range parts {
		segments[i] = strings.TrimSpace(part)
	}
	return segments
}

func (s *Session) parseIncludeDirective(token Token, file string) (*IncludeDirective, error) {
	segments := splitDirective(token.Arg)
	if segments[0] == "" {
		return nil, s.Fail(ErrSyntax, file, "Invalid include directive %q. A file path is required.", token.Arg)
	}
	return &IncludeDirective{
		Path:         segments[0],
		SectionTitle: segments[1],
		TargetLevel:  segments[2],
	}, nil
}

// frame is the context of the file being expanded.
type frame struct {
	dir    string
	stack  []string           // absolute paths, the last one is the current file
	vars   markdown.Variables // scope merged along the include chain, fallback for include paths
	root   markdown.Variables
	offset int // heading shift already applied by ancestors
}

func (f frame) file() string {
	if len(f.stack) == 0 {
		return "<unknown>"
	}
	return f.stack[len(f.stack)-1]
}

// handleInclude expands a single include directive.
func (s *Session) handleInclude(token Token, f frame) (string, error) {
	currentFile := f.file()

	directive, err := s.parseIncludeDirective(token, currentFile)
	if err != nil {
		return "", err
	}

	includePath, placeholders, err := s.resolvePlaceholders(directive.Path, currentFile, f.root, f.vars)
	if err != nil {
		return "", err
	}
	if includePath == "" {
		return "", nil
	}

	path := resolvePath(f.dir, includePath)
	if slices.Contains(f.stack, path) {
		return "", s.circularInclude(f.stack, path)
	}
	if !exists(path) {
		return s.recordMissingInclude(path, currentFile, placeholders), nil
	}

	file, err := s.readFile(path)
	if err != nil {
		return "", err
	}
	core.CurrentLogger().Debugf("Including %s in %s", s.Rel(path), s.Rel(currentFile))

	snippet, referenceLevel, err := s.extractReference(file.Body, directive.SectionTitle)
	if err != nil {
		return "", err
	}
	shift, err := s.computeHeadingShift(directive.TargetLevel, referenceLevel, f.offset)
	if err != nil {
		return "", err
	}
	if shift != 0 && snippet != markdown.EmptyDocument {
		snippet = snippet.ShiftHeadingLevels(shift)
	}

	processed, err := s.processContent(snippet, frame{
		dir:    file.Dir(),
		stack:  push(f.stack, path),
		vars:   Merge(file.Variables(), f.vars),
		root:   f.root,
		offset: f.offset + shift,
	})
	if err != nil {
		return "", err
	}

	// Level-less includes follow the shift of their ancestors
	if directive.TargetLevel == "" && f.offset != 0 {
		processed = processed.ShiftHeadingLevels(f.offset)
	}
	return string(processed), nil
}

// extractReference selects the included snippet and the heading level it is aligned on.
// The level is 0 when the snippet has no heading.
func (s *Session) extractReference(body markdown.Document, sectionTitle string) (markdown.Document, int, error) {
	if sectionTitle == "" {
		return body, body.LowestHeadingLevel(), nil
	}
	section, err := body.ExtractSection(sectionTitle)
	if errors.Is(err, markdown.ErrSectionNotFound) {
		return "", 0, s.Wrap(ErrSyntax, "", err, "Section %q not found in included file.", sectionTitle)
	}
	if errors.Is(err, markdown.ErrInvalidSection) {
		return "", 0, s.Wrap(ErrSyntax, "", err, "Section %q is not a valid markdown heading.", sectionTitle)
	}
	if err != nil {
		return "", 0, err
	}
	return section.ContentText, section.HeadingLevel, nil
}

// computeHeadingShift returns the level difference to apply on the included headings.
// Without a reference level, the snippet is assumed to sit one level below its parent.
func (s *Session) computeHeadingShift(targetLevelSpec string, referenceLevel int, offset int) (int, error) {
	if targetLevelSpec == "" {
		return 0, nil
	}
	targetLevel := markdown.ParseLevelSpec(targetLevelSpec)
	if targetLevel == 0 {
		return 0, s.Fail(ErrSyntax, "", "Invalid level %q in include directive.", targetLevelSpec)
	}
	effectiveReference := referenceLevel
	if effectiveReference == 0 {
		effectiveReference = offset + 1
	}
	return targetLevel + offset - effectiveReference, nil
}

// recordMissingInclude adds a diagnostic and returns the marker replacing the directive.
func (s *Session) recordMissingInclude(path, from string, placeholders []string) string {
	displayPath := s.Rel(path)
	displayFrom := ""
	if from != "" && from != "<unknown>" {
		displayFrom = s.Rel(from)
	}

	message := fmt.Sprintf("Included file not found: %s", displayPath)
	if displayFrom != "" {
		message += fmt.Sprintf(" (included from %s)", displayFrom)
	}
	if len(placeholders) > 0 {
		message += fmt.Sprintf(" please check the variable %s value.", strings.Join(placeholders, ", "))
	}
	// The variable pre-pass reports the same message first. A file missing twice
	// from the same includer therefore gets two markers but a single diagnostic.
	s.Record(message)

	if displayFrom != "" {
		return fmt.Sprintf("<!-- missing %s (from %s) -->", displayPath, displayFrom)
	}
	return fmt.Sprintf("<!-- missing %s -->", displayPath)
}

func (s *Session) circularInclude(stack []string, path string) error {
	chain := append(append([]string{}, stack...), path)
	return s.Fail(ErrCircularInclude, path, "Circular include detected: %s", strings.Join(chain, " -> "))
}

// processContent expands a body: conditionals first, then includes and variables,
// and finally images when requested.
func (s *Session) processContent(content markdown.Document, f frame) (markdown.Document, error) {
	nodes, err := s.Parse(Tokenize(content), f.file())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := s.render(&sb, nodes, f); err != nil {
		return "", err
	}
	rendered := markdown.Document(sb.String())

	if s.InlineImages {
		rendered = s.inlineImages(rendered, f.dir)
	}
	return rendered, nil
}

func (s *Session) render(sb *strings.Builder, nodes []Node, f frame) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case TextNode:
			sb.WriteString(n.Text)
		case IncludeNode:
			included, err := s.handleInclude(n.Token, f)
			if err != nil {
				return err
			}
			sb.WriteString(included)
		case VarNode:
			value, err := s.substituteVariable(n.Token, f.root, f.file())
			if err != nil {
				return err
			}
			sb.WriteString(value)
		case ConditionalNode:
			branch, err := s.selectBranch(n, f.root, f.file())
			if err != nil {
				return err
			}
			if branch == nil {
				continue
			}
			if err := s.render(sb, branch.Body, f); err != nil {
				return err
			}
		}
	}
	return nil
}
