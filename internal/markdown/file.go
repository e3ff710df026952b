package markdown

import (
	"fmt"
	"os"
	"path/filepath"
)

type File struct {
	AbsolutePath string
	Content      []byte
	FrontMatter  FrontMatter
	Body         Document
}

func (m File) String() string {
	return fmt.Sprintf("Markdown file %q", m.AbsolutePath)
}

// ParseFile reads a Markdown file and separates its front matter from its body.
func ParseFile(path string) (*File, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	contentAsBytes, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, err
	}

	frontMatter, body := SplitFrontMatter(string(contentAsBytes))

	return &File{
		AbsolutePath: absolutePath,
		Content:      contentAsBytes,
		FrontMatter:  frontMatter,
		Body:         body,
	}, nil
}

// Dir returns the directory containing the file.
func (m *File) Dir() string {
	return filepath.Dir(m.AbsolutePath)
}

// Variables returns the variables declared in the front matter.
func (m *File) Variables() Variables {
	return m.FrontMatter.Variables()
}
