// Package competency normalizes raw job-requirement entries into fully
// weighted, thresholded competencies ready for matching.
package competency

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Weight and threshold bounds for normalized competencies
const (
	minWeight    = 0.3
	maxWeight    = 1.2
	minThreshold = 0.25
	maxThreshold = 0.5
)

// categoryWeights holds the base importance weight per category
var categoryWeights = map[types.Category]float64{
	types.CategoryMLAI:          1.0,
	types.CategoryTechnicalCore: 1.0,
	types.CategoryPlatform:      0.9,
	types.CategoryReliability:   0.85,
	types.CategoryProcess:       0.75,
	types.CategoryCollaboration: 0.6,
	types.CategoryGeneral:       0.8,
}

// categoryThresholds holds the minimum similarity per category for a
// competency to count as matched
var categoryThresholds = map[types.Category]float64{
	types.CategoryMLAI:          0.38,
	types.CategoryTechnicalCore: 0.38,
	types.CategoryPlatform:      0.37,
	types.CategoryReliability:   0.35,
	types.CategoryProcess:       0.33,
	types.CategoryCollaboration: 0.30,
	types.CategoryGeneral:       0.35,
}

// Normalize converts raw requirement entries into competencies, stamping
// the given importance. Entries that already carry a match threshold and
// importance pass through untouched, so re-normalizing a persisted,
// possibly feedback-adjusted competency list is a no-op.
func Normalize(entries []types.CompetencyEntry, importance types.Importance) []types.Competency {
	normalized := make([]types.Competency, 0, len(entries))
	for _, entry := range entries {
		normalized = append(normalized, normalizeOne(entry, importance))
	}
	return normalized
}

func normalizeOne(entry types.CompetencyEntry, importance types.Importance) types.Competency {
	if isNormalized(entry) {
		return types.Competency{
			Name:           entry.Name,
			CanonicalName:  entry.CanonicalName,
			Description:    entry.Description,
			Category:       types.Category(entry.Category),
			Weight:         entry.Weight,
			MatchThreshold: entry.MatchThreshold,
			Importance:     types.Importance(entry.Importance),
		}
	}

	name := strings.TrimSpace(entry.Name)
	description := strings.TrimSpace(entry.Description)

	category := types.Category(entry.Category)
	if category == "" {
		category = ClassifyCategory(name, description)
	}

	weight := entry.Weight
	if weight == 0 {
		weight = baseWeight(category)
	}

	threshold := entry.MatchThreshold
	if threshold == 0 {
		threshold = baseThreshold(category)
	}

	canonical := entry.CanonicalName
	if canonical == "" {
		canonical = name
	}

	return types.Competency{
		Name:           name,
		CanonicalName:  canonical,
		Description:    description,
		Category:       category,
		Weight:         clamp(weight, minWeight, maxWeight),
		MatchThreshold: clamp(threshold, minThreshold, maxThreshold),
		Importance:     types.Importance(strings.ToUpper(string(importance))),
	}
}

// isNormalized reports whether the entry has already been through
// normalization: a threshold and an importance are only ever set by it.
func isNormalized(entry types.CompetencyEntry) bool {
	return entry.MatchThreshold != 0 && entry.Importance != ""
}

func baseWeight(category types.Category) float64 {
	if w, ok := categoryWeights[category]; ok {
		return w
	}
	return categoryWeights[types.CategoryGeneral]
}

func baseThreshold(category types.Category) float64 {
	if t, ok := categoryThresholds[category]; ok {
		return t
	}
	return categoryThresholds[types.CategoryGeneral]
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
