package mdwt

import (
	"github.com/julien-sobczak/mdwt/internal/markdown"
)

// Compose prepends the front matter regenerated from the root scope and prettifies the document.
// When the entry front matter used Windows line endings, the whole document keeps them.
func Compose(body markdown.Document, original markdown.FrontMatter, root markdown.Variables, skipHeaders bool) markdown.Document {
	if skipHeaders {
		return body.Prettify()
	}

	frontMatter := root.AsFrontMatter(original)
	result := (markdown.Document(frontMatter) + body).Prettify()
	if newline := original.Newline(); newline != "\n" {
		result = result.MustTransform(markdown.ConvertNewlines(newline))
	}
	return result
}
