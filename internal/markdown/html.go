package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

// slugIDs generates heading identifiers matching the anchors used in list tables.
type slugIDs struct {
	slugger *Slugger
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(s.slugger.Slug(string(value)))
}

func (s *slugIDs) Put(value []byte) {}

// ToHTML renders the document as HTML. Unknown extension names are ignored.
func (m Document) ToHTML(extensions ...string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(collectExtensions(extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	ctx := parser.NewContext(parser.WithIDs(&slugIDs{slugger: NewSlugger()}))

	var buf bytes.Buffer
	if err := engine.Convert([]byte(m), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("markdown to html: %w", err)
	}
	return buf.String(), nil
}
