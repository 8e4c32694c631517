// Package slug turns free-form category names into route-safe identifiers.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaces     = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// Slugify lower-cases name, strips diacritics, drops everything that is not
// an ASCII letter, digit, space or hyphen, and collapses spaces and hyphens
// into single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = spaces.ReplaceAllString(s, "-")
	return hyphens.ReplaceAllString(s, "-")
}

// Generated returns "<prefix>-<unix ms>".
func Generated(prefix string, t time.Time) string {
	return prefix + "-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// Route returns the display path of a category: "/" for home.
func Route(slug string) string {
	if slug == "" {
		return "/"
	}
	return "/c/" + slug
}
