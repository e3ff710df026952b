package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/julien-sobczak/mdwt/pkg/text"
	"gopkg.in/yaml.v3"
)

const bom = "\uFEFF"
const frontMatterDelimiter = "---"

var regexFrontMatter = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---(?:\r?\n|$)`)
var regexListItem = regexp.MustCompile(`^\s+-\s+`)

// FrontMatter is the raw front matter block, delimiters, byte order mark, and the blank line that follows included.
type FrontMatter string

// HasBOM reports whether the block starts with a byte order mark.
func (f FrontMatter) HasBOM() bool {
	return strings.HasPrefix(string(f), bom)
}

// Newline returns the newline style used by the block ("\n" when empty).
func (f FrontMatter) Newline() string {
	return text.DetectNewline(string(f))
}

// Content returns the text between the delimiters.
func (f FrontMatter) Content() string {
	match := regexFrontMatter.FindStringSubmatch(strings.TrimPrefix(string(f), bom))
	if match == nil {
		return ""
	}
	return match[1]
}

// AsNode decodes the front matter content as a YAML mapping.
// It returns nil when the block is empty.
func (f FrontMatter) AsNode() (*yaml.Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal([]byte(f.Content()), &document); err != nil {
		return nil, err
	}
	if document.Kind == 0 || len(document.Content) == 0 { // Happen when no Front Matter is present
		return nil, nil
	}
	node := document.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is not a mapping")
	}
	return node, nil
}

// Variables returns the scalars and the lists of scalars declared in the front matter.
// Nested mappings are ignored. Blocks that are not valid YAML fall back to a line-based
// parsing of "key: value" lines and "key:" lines followed by indented "- item" lines.
func (f FrontMatter) Variables() Variables {
	node, err := f.AsNode()
	if err != nil {
		return f.parseLines()
	}
	vars := make(Variables)
	if node == nil {
		return vars
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			vars[key.Value] = Scalar(value.Value)
		case yaml.SequenceNode:
			var items []string
			for _, item := range value.Content {
				if item.Kind == yaml.ScalarNode {
					items = append(items, item.Value)
				}
			}
			if len(items) == 0 {
				vars[key.Value] = Scalar("")
				continue
			}
			vars[key.Value] = List(items...)
		}
	}
	return vars
}

func (f FrontMatter) parseLines() Variables {
	vars := make(Variables)
	lines := text.SplitLines(f.Content())

	i := 0
	for i < len(lines) {
		line := lines[i]
		if text.IsBlank(line) {
			i++
			continue
		}

		key, rawValue, found := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		rawValue = strings.TrimSpace(rawValue)
		if !found || key == "" {
			i++
			continue
		}

		if rawValue != "" {
			vars[key] = Scalar(unquote(rawValue))
			i++
			continue
		}

		var items []string
		j := i + 1
		for j < len(lines) {
			if text.IsBlank(lines[j]) {
				j++
				continue
			}
			prefix := regexListItem.FindString(lines[j])
			if prefix == "" {
				break
			}
			items = append(items, unquote(lines[j][len(prefix):]))
			j++
		}

		if len(items) > 0 {
			vars[key] = List(items...)
			i = j
			continue
		}

		vars[key] = Scalar("")
		i++
	}

	return vars
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// SplitFrontMatter separates a leading front matter block from the body.
// The blank line following the closing delimiter belongs to the front matter.
func SplitFrontMatter(content string) (FrontMatter, Document) {
	working := strings.TrimPrefix(content, bom)
	hasBOM := len(working) != len(content)

	if !strings.HasPrefix(working, "---\n") && !strings.HasPrefix(working, "---\r\n") {
		return "", Document(content)
	}

	loc := regexFrontMatter.FindStringIndex(working)
	if loc == nil {
		return "", Document(content)
	}

	block := working[:loc[1]]
	rest := working[loc[1]:]
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		block += "\r\n"
	case strings.HasPrefix(rest, "\n"):
		block += "\n"
	}
	body := working[len(block):]

	if hasBOM {
		block = bom + block
	}
	return FrontMatter(block), Document(body)
}
