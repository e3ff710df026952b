package mdwt

import (
	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/markdown"
	"github.com/julien-sobczak/mdwt/internal/medias"
)

// inlineImages replaces local image targets by base64 data URIs.
// External targets and unreadable files are left untouched.
func (s *Session) inlineImages(content markdown.Document, baseDir string) markdown.Document {
	return content.ReplaceImages(func(image markdown.Image) (markdown.Image, bool) {
		if image.External() {
			return image, false
		}
		path := resolvePath(baseDir, image.Target)
		dataURI, err := medias.DataURI(path)
		if err != nil {
			core.CurrentLogger().Debugf("Image %s not inlined: %v", image.Target, err)
			return image, false
		}
		image.Target = dataURI
		return image, true
	})
}
