package competency

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// categoryKeywords maps categories to the signal words looked for in a
// competency's name and description. First category with a hit wins, in
// the order listed in classifyOrder.
var categoryKeywords = map[types.Category][]string{
	types.CategoryMLAI: {
		"machine learning", "deep learning", "ml", "llm", "nlp",
		"neural", "pytorch", "tensorflow", "computer vision", "embedding",
	},
	types.CategoryPlatform: {
		"kubernetes", "docker", "aws", "gcp", "azure", "terraform",
		"cloud", "infrastructure", "ci/cd", "deployment",
	},
	types.CategoryReliability: {
		"reliability", "observability", "monitoring", "incident",
		"on-call", "sre", "latency", "availability",
	},
	types.CategoryProcess: {
		"agile", "scrum", "code review", "testing", "tdd",
		"documentation", "planning",
	},
	types.CategoryCollaboration: {
		"communication", "collaboration", "mentoring", "leadership",
		"stakeholder", "cross-functional", "teamwork",
	},
	types.CategoryTechnicalCore: {
		"programming", "algorithms", "data structures", "api", "database",
		"distributed", "backend", "frontend", "sql", "microservices",
	},
}

// classifyOrder fixes the precedence when multiple categories match
var classifyOrder = []types.Category{
	types.CategoryMLAI,
	types.CategoryPlatform,
	types.CategoryReliability,
	types.CategoryProcess,
	types.CategoryCollaboration,
	types.CategoryTechnicalCore,
}

// ClassifyCategory assigns a category from the competency's name and
// description. Anything without a keyword hit falls back to GENERAL.
func ClassifyCategory(name, description string) types.Category {
	text := strings.ToLower(name + " " + description)
	for _, category := range classifyOrder {
		for _, keyword := range categoryKeywords[category] {
			if containsWord(text, keyword) {
				return category
			}
		}
	}
	return types.CategoryGeneral
}

// containsWord reports whether keyword occurs in text on word boundaries,
// so "ml" does not match inside "html".
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], keyword)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
