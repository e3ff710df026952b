package markdown_test

import (
	"testing"

	"github.com/julien-sobczak/mdwt/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {

	t.Run("External", func(t *testing.T) {
		var tests = []struct {
			target   string
			external bool
		}{
			{"https://example.com/logo.png", true},
			{"HTTP://example.com/logo.png", true},
			{"//cdn.example.com/logo.png", true},
			{"data:image/png;base64,AAAA", true},
			{"mailto:me@example.com", true},
			{"ftp://example.com/logo.png", true},
			{"", true},
			{"logo.png", false},
			{"./images/logo.png", false},
			{"/home/me/logo.png", false},
		}
		for _, tt := range tests {
			image := markdown.Image{Alt: "logo", Target: tt.target}
			assert.Equal(t, tt.external, image.External(), tt.target)
		}
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, `![logo](logo.png)`, markdown.Image{Alt: "logo", Target: "logo.png"}.String())
		assert.Equal(t, `![](logo.png "The logo")`, markdown.Image{Target: "logo.png", Title: "The logo"}.String())
	})
}

func TestReplaceImages(t *testing.T) {
	doc := markdown.UnescapeTestDocument(`# Images

![A](a.png) and ![B](<dir/b b.png> "Title B")
![C](https://example.com/c.png 'Title C')

”””
![D](d.png)
”””
`)

	var found []markdown.Image
	actual := doc.ReplaceImages(func(image markdown.Image) (markdown.Image, bool) {
		found = append(found, image)
		if image.External() {
			return image, false
		}
		image.Target = "new-" + image.Target
		return image, true
	})

	assert.Equal(t, []markdown.Image{
		{Alt: "A", Target: "a.png"},
		{Alt: "B", Target: "dir/b b.png", Title: "Title B"},
		{Alt: "C", Target: "https://example.com/c.png", Title: "Title C"},
	}, found)

	expected := markdown.UnescapeTestDocument(`# Images

![A](new-a.png) and ![B](new-dir/b b.png "Title B")
![C](https://example.com/c.png 'Title C')

”””
![D](d.png)
”””
`)
	assert.Equal(t, expected, actual)
}
