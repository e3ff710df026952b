package text

import (
	"strings"
	"unicode"
)

// IsBlank returns if a text is blank.
func IsBlank(text string) bool {
	return len(strings.TrimSpace(text)) == 0
}

// TrimTrailingSpaces removes trailing whitespace on every line.
func TrimTrailingSpaces(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// NormalizeNewlines converts Windows line endings to Unix ones.
func NormalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// DetectNewline returns "\r\n" when the text uses Windows line endings, "\n" otherwise.
func DetectNewline(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// SplitLines splits a text on both Unix and Windows line endings.
func SplitLines(text string) []string {
	return strings.Split(NormalizeNewlines(text), "\n")
}
