package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespaceRuns  = regexp.MustCompile(`\s+`)
)

func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

// Slugify turns a display title into a stable lowercase key: punctuation is
// stripped, whitespace runs become single hyphens.
func Slugify(title string) string {
	slug := slugStripPattern.ReplaceAllString(title, "")
	slug = slugWhitespaceRuns.ReplaceAllString(slug, "-")
	return strings.ToLower(slug)
}
