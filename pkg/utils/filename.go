package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	hyphenRuns   = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// DocumentFileName builds a download name such as "kwitansi-jasa-budi-santoso.pdf"
func DocumentFileName(kind, recipient, ext string) string {
	parts := []string{"kwitansi"}
	if k := Slugify(kind); k != "" {
		parts = append(parts, k)
	}
	if r := Slugify(recipient); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, "-") + "." + strings.TrimPrefix(ext, ".")
}
