package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// MinHeadingLevel and MaxHeadingLevel bound ATX heading levels.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

var regexShiftableHeading = regexp.MustCompile(`^(\s{0,3})(#{1,6})(\s+)(.*)$`)
var regexLevelSpec = regexp.MustCompile(`^#{1,6}$`)

// LowestHeadingLevel returns the smallest heading level present outside fenced code blocks,
// or 0 when the document contains no heading.
func (m Document) LowestHeadingLevel() int {
	minLevel := 0
	for _, line := range m.ClassifyLines() {
		if line.Kind != HeadingLine {
			continue
		}
		if minLevel == 0 || line.Level < minLevel {
			minLevel = line.Level
		}
	}
	return minLevel
}

// ParseLevelSpec converts a run of 1 to 6 '#' into a heading level.
// It returns 0 when the spec is not valid.
func ParseLevelSpec(spec string) int {
	trimmed := strings.TrimSpace(spec)
	if !regexLevelSpec.MatchString(trimmed) {
		return 0
	}
	return len(trimmed)
}

// ShiftHeadingLevels adds shift to every heading level outside fenced code blocks.
// Resulting levels are clamped to [1, 6]. Indentation, separator, and text are preserved.
func (m Document) ShiftHeadingLevels(shift int) Document {
	if shift == 0 {
		return m
	}
	return m.MapUnfencedLines(func(line Line) string {
		match := regexShiftableHeading.FindStringSubmatch(line.Text)
		if match == nil {
			return line.Text
		}
		indent, hashes, separator, rest := match[1], match[2], match[3], match[4]
		level := clampHeadingLevel(len(hashes) + shift)
		return indent + strings.Repeat("#", level) + separator + rest
	})
}

func clampHeadingLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

// Section is a heading and its subtree.
type Section struct {
	HeadingText  string
	HeadingLevel int
	ContentText  Document // heading line included
}

func (s Section) String() string {
	return fmt.Sprintf("%s %s", strings.Repeat("#", s.HeadingLevel), s.HeadingText)
}

// ErrSectionNotFound is returned when no line matches the requested section title.
var ErrSectionNotFound = fmt.Errorf("section not found")

// ErrInvalidSection is returned when the line matching the section title is not a heading.
var ErrInvalidSection = fmt.Errorf("section is not a valid markdown heading")

// ExtractSection returns the subtree starting at the first unfenced line equal to title (whitespace-trimmed).
// The section ends before the next heading of the same or a higher level.
func (m Document) ExtractSection(title string) (*Section, error) {
	normalizedTitle := strings.TrimSpace(title)
	lines := m.ClassifyLines()

	start := -1
	for i, line := range lines {
		if line.Fenced() {
			continue
		}
		if strings.TrimSpace(line.Text) == normalizedTitle {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, title)
	}
	heading := lines[start]
	if heading.Kind != HeadingLine {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSection, title)
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if lines[i].Kind == HeadingLine && lines[i].Level <= heading.Level {
			end = i
			break
		}
	}

	var content []string
	for _, line := range lines[start:end] {
		content = append(content, strings.TrimSuffix(line.Text, "\r"))
	}

	return &Section{
		HeadingText:  heading.Title,
		HeadingLevel: heading.Level,
		ContentText:  Document(strings.Join(content, "\n")),
	}, nil
}
