package types

import "github.com/google/uuid"

// MatchStatus describes how well a competency was covered by candidate
// evidence.
type MatchStatus string

// Match statuses
const (
	// StatusMatched means the best evidence similarity met the competency threshold.
	StatusMatched MatchStatus = "matched"
	// StatusPartial means some evidence existed but none reached the threshold.
	StatusPartial MatchStatus = "partial"
	// StatusMissing means no evidence produced any similarity at all.
	StatusMissing MatchStatus = "missing"
)

// EvidenceCitation points at a graph node that supported a competency.
type EvidenceCitation struct {
	NodeID     string  `json:"node_id"`
	NodeType   string  `json:"node_type"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// CompetencyResult is the scoring outcome for a single competency.
type CompetencyResult struct {
	Competency     Competency         `json:"competency"`
	Status         MatchStatus        `json:"status"`
	BestSimilarity float64            `json:"best_similarity"`
	Coverage       float64            `json:"coverage"`
	PointsEarned   float64            `json:"points_earned"`
	PointsBudget   float64            `json:"points_budget"`
	Citations      []EvidenceCitation `json:"citations,omitempty"`
}

// CoverageSummary aggregates competency results into the scores surfaced
// to candidates and recruiters.
type CoverageSummary struct {
	OverallStrength  float64 `json:"overall_strength"`
	RequiredStrength float64 `json:"required_strength"`
	OptionalStrength float64 `json:"optional_strength"`
	RequiredCoverage string  `json:"required_coverage"` // "matched/total"
	MatchedCount     int     `json:"matched_count"`
	PartialCount     int     `json:"partial_count"`
	MissingCount     int     `json:"missing_count"`
}

// MatchReport is the output of one candidate x job scoring pass.
type MatchReport struct {
	CandidateID uuid.UUID          `json:"candidate_id"`
	JobID       uuid.UUID          `json:"job_id"`
	JobTitle    string             `json:"job_title,omitempty"`
	Results     []CompetencyResult `json:"results"`
	Summary     CoverageSummary    `json:"coverage_summary"`
}

// Matched returns the results whose status is matched.
func (r *MatchReport) Matched() []CompetencyResult {
	return r.filter(StatusMatched)
}

// Missing returns the results whose status is missing.
func (r *MatchReport) Missing() []CompetencyResult {
	return r.filter(StatusMissing)
}

func (r *MatchReport) filter(status MatchStatus) []CompetencyResult {
	var out []CompetencyResult
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}
