package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Regex to match images. The target is either <...> or a run of non-space characters.
var regexImage = regexp.MustCompile(`!\[([^\]]*)\]\(\s*(<[^>]+>|[^)\s]+)(?:\s+(?:"([^"]+)"|'([^']+)'))?\s*\)`)

var externalPrefixes = []string{
	"http://",
	"https://",
	"data:",
	"mailto:",
	"ftp://",
	"//",
}

type Image struct {
	Alt    string
	Target string
	Title  string
}

// External reports whether the image target points outside the local file system.
func (i Image) External() bool {
	if i.Target == "" {
		return true
	}
	lower := strings.ToLower(i.Target)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func (i Image) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`![%s](%s`, i.Alt, i.Target))
	if i.Title != "" {
		sb.WriteString(fmt.Sprintf(` "%s"`, i.Title))
	}
	sb.WriteString(")")
	return sb.String()
}

func normalizeImageTarget(target string) string {
	trimmed := strings.TrimSpace(target)
	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}
	return trimmed
}

/*
 * Document
 */

// ReplaceImages calls fn for every image outside fenced code blocks.
// When fn returns false, the original image syntax is kept verbatim.
func (m Document) ReplaceImages(fn func(image Image) (Image, bool)) Document {
	return m.MapUnfencedLines(func(line Line) string {
		return regexImage.ReplaceAllStringFunc(line.Text, func(match string) string {
			submatches := regexImage.FindStringSubmatch(match)
			title := submatches[3]
			if title == "" {
				title = submatches[4]
			}
			image := Image{
				Alt:    submatches[1],
				Target: normalizeImageTarget(submatches[2]),
				Title:  title,
			}
			replacement, ok := fn(image)
			if !ok {
				return match
			}
			return replacement.String()
		})
	})
}
