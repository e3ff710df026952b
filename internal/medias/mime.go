package medias

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMimeType is used for unknown extensions.
//
// RFC 2046 declares:
// The "octet-stream" subtype is used to indicate that a body contains arbitrary binary data.
const DefaultMimeType = "application/octet-stream"

var imageMimeTypes = map[string]string{
	// See https://developer.mozilla.org/en-US/docs/Web/Media/Formats/Image_types
	".apng": "image/apng",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// MimeType returns the mime type for common image extensions (ex: ".png").
func MimeType(extension string) string {
	mime, ok := imageMimeTypes[strings.ToLower(extension)]
	if !ok {
		return DefaultMimeType
	}
	return mime
}

// IsImage reports whether the path has a known image extension.
func IsImage(path string) bool {
	_, ok := imageMimeTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DataURI reads a regular file and encodes it as a base64 data URI.
func DataURI(path string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !stat.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := MimeType(filepath.Ext(path))
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
