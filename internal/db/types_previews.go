package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Preview is one cached match result for a (candidate, job) pair. The
// two source timestamps record the profile and job versions the result
// was computed from; the preview is stale once either record's
// updated-at advances past them.
type Preview struct {
	CandidateID        uuid.UUID             `json:"candidate_id"`
	JobID              uuid.UUID             `json:"job_id"`
	MatchStrength      float64               `json:"match_strength"`
	RequiredCoverage   string                `json:"required_coverage"`
	SelectedProjects   int                   `json:"selected_projects"`
	SelectedSkills     int                   `json:"selected_skills"`
	SelectedContent    types.SelectedContent `json:"selected_content"`
	CoverageSummary    types.CoverageSummary `json:"coverage_summary"`
	CandidateUpdatedAt time.Time             `json:"candidate_updated_at"`
	JobUpdatedAt       time.Time             `json:"job_updated_at"`
	ComputedAt         time.Time             `json:"computed_at"`
}

// Stale reports whether the preview predates either source record
func (p *Preview) Stale(candidateUpdatedAt, jobUpdatedAt time.Time) bool {
	return p.CandidateUpdatedAt.Before(candidateUpdatedAt) || p.JobUpdatedAt.Before(jobUpdatedAt)
}
