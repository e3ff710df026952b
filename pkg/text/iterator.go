package text

import (
	"strings"
)

// Line is a line of text with its position in the original text.
type Line struct {
	Text   string // "\r" kept when the text uses Windows newlines
	Number int    // 1-based
	Offset int    // byte offset of the first character
}

// MissingLine is returned when reading past the last line.
var MissingLine = Line{Number: -1, Offset: -1}

func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

// LineIterator iterates over the lines of a text.
type LineIterator struct {
	index int
	lines []Line
}

// NewLineIteratorFromText splits the text on "\n".
// A text ending with a newline yields a last empty line so that offsets cover the whole text.
func NewLineIteratorFromText(text string) *LineIterator {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	offset := 0
	for i, raw := range rawLines {
		lines[i] = Line{Text: raw, Number: i + 1, Offset: offset}
		offset += len(raw) + 1
	}
	return &LineIterator{lines: lines}
}

func (l *LineIterator) HasNext() bool {
	return l.index < len(l.lines)
}

// Peek returns the next line without moving the iterator.
func (l *LineIterator) Peek() Line {
	if !l.HasNext() {
		return MissingLine
	}
	return l.lines[l.index]
}

func (l *LineIterator) Next() Line {
	line := l.Peek()
	if l.HasNext() {
		l.index++
	}
	return line
}
