package content

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// SlugFromFilename derives the routable slug of a post from its file name by
// dropping the extension and the numeric ordering prefix.
//
//	01-intro.mdx                       -> intro
//	09-simple_query-subscriptions.mdx  -> simple_query-subscriptions
//	about.md                           -> about
func SlugFromFilename(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	stem := strings.TrimSuffix(name, path.Ext(name))

	digits := 0
	for digits < len(stem) && stem[digits] >= '0' && stem[digits] <= '9' {
		digits++
	}
	slug := stem
	if digits > 0 && digits < len(stem) && (stem[digits] == '-' || stem[digits] == '_') {
		slug = stem[digits+1:]
	}

	if slug == "" || strings.IndexFunc(slug, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return slug, nil
}
