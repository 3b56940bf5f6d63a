// Package ingestion loads candidate profiles and job records from disk
// and extracts plain text from job descriptions that arrive as HTML.
package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are stripped before extraction. Navigation chrome and
// embedded scripts never carry job-description content.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"nav", "header", "footer", "aside", "form",
}

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"[class*='job-description']",
	"[class*='description']",
	"main",
	"article",
	"body",
}

// LooksLikeHTML reports whether the content appears to be an HTML
// document rather than plain text.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<!doctype") {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") || strings.Contains(lower, "<p>")
}

// ExtractJobText parses HTML and returns the job-description text with
// list items rendered as bullet lines. Block boundaries become line
// breaks so section structure survives for downstream cleaning.
func ExtractJobText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		selection := doc.Find(sel).First()
		if selection.Length() == 0 {
			continue
		}
		text := renderText(selection)
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	return "", nil
}

// renderText walks the selection's block elements so headings, paragraphs
// and bullets land on their own lines instead of running together.
func renderText(sel *goquery.Selection) string {
	var sb strings.Builder

	sel.Find("h1, h2, h3, h4, h5, h6, p, li, td, div").Each(func(_ int, s *goquery.Selection) {
		// Leaf blocks only; a div wrapping paragraphs would duplicate them.
		if s.Children().Filter("h1, h2, h3, h4, h5, h6, p, li, td, div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if s.Is("li") {
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	if sb.Len() == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return sb.String()
}
