package services

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a title: lowercased, with
// everything except letters, digits, underscores and hyphens dropped,
// and whitespace runs collapsed to single hyphens. Letters of any
// script are kept, so Bengali titles keep their Bengali slug. Combining
// marks must survive too: Bengali vowel signs and the hasanta are
// marks, not letters, and dropping them would corrupt the word.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// numericSlug reports whether a slug consists solely of ASCII digits.
// Such a slug would resolve as a numeric id on lookup, never as a slug.
// Digits of other scripts do not parse as ids and are left alone.
func numericSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// nextSlug derives the next candidate after a collision: when the last
// hyphen segment is already numeric it is incremented, otherwise "-2"
// is appended.
func nextSlug(slug string) string {
	parts := strings.Split(slug, "-")
	last := parts[len(parts)-1]
	if n, err := strconv.Atoi(last); err == nil && n >= 0 {
		parts[len(parts)-1] = strconv.Itoa(n + 1)
		return strings.Join(parts, "-")
	}
	return slug + "-2"
}
