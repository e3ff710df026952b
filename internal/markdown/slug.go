package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a heading contains no character usable in an anchor.
const DefaultSlug = "section"

var regexSlugForbidden = regexp.MustCompile(`[^a-z0-9\s-]`)
var regexSlugSpaces = regexp.MustCompile(`\s+`)

// combining diacritical marks (U+0300 to U+036F)
var diacritics = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Slugify converts a heading text into an URL fragment.
//
// Ex: "Écoute & Réponse" => "ecoute-reponse"
func Slugify(heading string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(diacritics))
	normalized, _, err := transform.String(t, heading)
	if err != nil {
		normalized = heading
	}
	slug := strings.ToLower(normalized)
	slug = regexSlugForbidden.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = regexSlugSpaces.ReplaceAllString(slug, "-")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}

// Slugger generates unique anchors inside a single document.
// Duplicates receive a numeric suffix ("-1", "-2", ...) in order of appearance.
type Slugger struct {
	counts map[string]int
}

func NewSlugger() *Slugger {
	return &Slugger{
		counts: make(map[string]int),
	}
}

// Slug returns the unique anchor for the given heading text.
func (s *Slugger) Slug(heading string) string {
	base := Slugify(heading)
	count := s.counts[base]
	s.counts[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, count)
}
