package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	blankRuns  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted job-description text: CRLF endings,
// collapsed runs of spaces, bullet markers unified to "- ", and blank
// lines capped at one between sections.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Unify bullet markers so downstream splitting sees one shape.
	for _, marker := range []string{"• ", "· ", "* ", "– "} {
		if strings.HasPrefix(trimmed, marker) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			break
		}
	}

	return multiSpace.ReplaceAllString(trimmed, " ")
}
