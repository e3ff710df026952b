package markdown

import (
	"strings"

	"github.com/julien-sobczak/mdwt/pkg/text"
)

// LineKind classifies a line of a Markdown document.
type LineKind int

const (
	// PlainLine is any line outside a fenced code block that is not a heading.
	PlainLine LineKind = iota
	// FencedLine is a line inside a fenced code block, delimiters included.
	FencedLine
	// HeadingLine is an ATX heading outside a fenced code block.
	HeadingLine
)

func (k LineKind) String() string {
	switch k {
	case FencedLine:
		return "fenced"
	case HeadingLine:
		return "heading"
	default:
		return "plain"
	}
}

// Line is a classified line of a Markdown document.
type Line struct {
	text.Line
	Kind  LineKind
	Level int    // heading level (1-6) for HeadingLine
	Title string // heading text for HeadingLine
}

func (l Line) Fenced() bool {
	return l.Kind == FencedLine
}

// Fence tracks the state of fenced code blocks.
// A fence opens on a line starting with at least three backticks or tildes
// and closes on a line starting with the same character repeated the same number of times.
type Fence struct {
	char   byte
	length int
}

// Open reports whether the scanner is currently inside a fenced code block.
func (f *Fence) Open() bool {
	return f.length > 0
}

// Scan updates the fence state with the next line and reports whether the line is fenced.
func (f *Fence) Scan(line string) bool {
	trimmed := strings.TrimSpace(line)
	if f.Open() {
		if strings.HasPrefix(trimmed, strings.Repeat(string(f.char), f.length)) {
			f.char = 0
			f.length = 0
		}
		return true
	}
	if char, length := fenceDelimiter(trimmed); length > 0 {
		f.char = char
		f.length = length
		return true
	}
	return false
}

func fenceDelimiter(trimmed string) (byte, int) {
	if len(trimmed) < 3 || (trimmed[0] != '`' && trimmed[0] != '~') {
		return 0, 0
	}
	char := trimmed[0]
	length := 0
	for length < len(trimmed) && trimmed[length] == char {
		length++
	}
	if length < 3 {
		return 0, 0
	}
	return char, length
}

// ClassifyLines splits the document into lines tagged as fenced, heading, or plain.
func (m Document) ClassifyLines() []Line {
	var results []Line
	var fence Fence

	iterator := m.Iterator()
	for iterator.HasNext() {
		line := iterator.Next()
		current := Line{Line: line, Kind: PlainLine}
		if fence.Scan(line.Text) {
			current.Kind = FencedLine
		} else if ok, title, level := IsHeading(line.Text); ok {
			current.Kind = HeadingLine
			current.Level = level
			current.Title = title
		}
		results = append(results, current)
	}
	return results
}

// MapUnfencedLines applies fn on every line outside fenced code blocks.
func (m Document) MapUnfencedLines(fn func(line Line) string) Document {
	lines := m.ClassifyLines()
	result := make([]string, len(lines))
	for i, line := range lines {
		if line.Fenced() {
			result[i] = line.Text
			continue
		}
		result[i] = fn(line)
	}
	return Document(strings.Join(result, "\n"))
}
