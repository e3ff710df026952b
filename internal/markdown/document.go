package markdown

import (
	"regexp"
	"strings"

	"github.com/julien-sobczak/mdwt/pkg/text"
)

// Document represents a Markdown document (can be a whole file, or just a snippet)
type Document string

// Null object
var EmptyDocument = Document("")

// Lines returns the lines present in the Markdown document
func (m Document) Lines() []string {
	return text.SplitLines(string(m))
}

func (m Document) IsBlank() bool {
	return text.IsBlank(string(m))
}

func (m Document) Iterator() *text.LineIterator {
	return text.NewLineIteratorFromText(string(m))
}

func (m Document) String() string {
	return string(m)
}

/*
 * Helpers
 */

var regexHeading = regexp.MustCompile(`^(#{1,6})\s+`)

// IsHeading returns if a given line is a Markdown ATX heading, its text and its level.
// Leading and trailing whitespace is ignored.
func IsHeading(line string) (bool, string, int) {
	trimmed := strings.TrimSpace(line)
	match := regexHeading.FindStringSubmatch(trimmed)
	if match == nil {
		return false, "", 0
	}
	return true, strings.TrimSpace(trimmed[len(match[0]):]), len(match[1])
}
