package markdown

import (
	"strings"

	"github.com/julien-sobczak/mdwt/pkg/text"
)

// Transformer applies changes on a Markdown document
type Transformer func(document Document) (Document, error)

// Transform applies transformers successively to create a new Markdown document
func (m Document) Transform(transformers ...Transformer) (Document, error) {
	result := m
	for _, transformer := range transformers {
		resultTransformed, err := transformer(result)
		if err != nil {
			return m, err
		}
		result = resultTransformed
	}
	return result, nil
}

// MustTransform is similar to Transform but does not expect an error
func (m Document) MustTransform(transformers ...Transformer) Document {
	result, err := m.Transform(transformers...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
 * Transformers
 */

// NormalizeNewlines converts "\r\n" to "\n".
func NormalizeNewlines() Transformer {
	return func(document Document) (Document, error) {
		return Document(text.NormalizeNewlines(string(document))), nil
	}
}

// TrimTrailingSpaces removes whitespace at the end of every line.
func TrimTrailingSpaces() Transformer {
	return func(document Document) (Document, error) {
		return Document(text.TrimTrailingSpaces(string(document))), nil
	}
}

// SquashBlankLines removes blank lines when multiple successive blank lines are present.
// Fenced code blocks are left untouched.
func SquashBlankLines() Transformer {
	return func(document Document) (Document, error) {
		var newLines []string

		previousLineBlank := false
		for _, line := range document.ClassifyLines() {
			if line.Fenced() {
				newLines = append(newLines, line.Text)
				previousLineBlank = false
				continue
			}
			blank := line.IsBlank()
			if blank && previousLineBlank {
				continue
			}
			newLines = append(newLines, line.Text)
			previousLineBlank = blank
		}

		return Document(strings.Join(newLines, "\n")), nil
	}
}

// EnsureTrailingNewline terminates the document with exactly one newline.
func EnsureTrailingNewline() Transformer {
	return func(document Document) (Document, error) {
		trimmed := strings.TrimRight(string(document), "\n")
		return Document(trimmed + "\n"), nil
	}
}

// ConvertNewlines replaces "\n" by the given newline sequence.
func ConvertNewlines(newline string) Transformer {
	return func(document Document) (Document, error) {
		if newline == "\n" {
			return document, nil
		}
		return Document(strings.ReplaceAll(string(document), "\n", newline)), nil
	}
}

// Prettify normalizes a generated document: Unix newlines, no trailing spaces,
// no successive blank lines outside code blocks, and a single final newline.
// An empty document stays empty.
func (m Document) Prettify() Document {
	if m == EmptyDocument {
		return EmptyDocument
	}
	return m.MustTransform(
		NormalizeNewlines(),
		TrimTrailingSpaces(),
		SquashBlankLines(),
		EnsureTrailingNewline(),
	)
}
