package usecase

import (
	"regexp"
	"strings"
)

// Compiled patterns for pain point cleanup
var (
	// Leading list markers such as "1.", "2)", "-", "•", "（一）"
	listMarkerPattern = regexp.MustCompile(`^\s*(?:[-*•·]+|\d+[.)、]|[（(][一二三四五六七八九十\d]+[)）])\s*`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// maxPainPointRunes caps a single pain point sent to the model
const maxPainPointRunes = 200

// PreprocessPainPoints trims list markers and whitespace, drops empty and
// duplicate entries and truncates overly long ones. Order is preserved.
func PreprocessPainPoints(points []string) []string {
	seen := make(map[string]bool, len(points))
	cleaned := make([]string, 0, len(points))

	for _, p := range points {
		p = listMarkerPattern.ReplaceAllString(p, "")
		p = multiSpacePattern.ReplaceAllString(p, " ")
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if r := []rune(p); len(r) > maxPainPointRunes {
			p = string(r[:maxPainPointRunes])
		}

		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, p)
	}

	return cleaned
}
