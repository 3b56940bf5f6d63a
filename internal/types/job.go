package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobRecord is the job posting snapshot handed over by the job-management
// service. Competencies are parsed from the raw description by the LLM
// collaborator and may be absent, in which case the plain skill lists act
// as a fallback source.
type JobRecord struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Description    string         `json:"description,omitempty"`
	Competencies   CompetencySpec `json:"competencies"`
	RequiredSkills []string       `json:"required_skills,omitempty"`
	OptionalSkills []string       `json:"optional_skills,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CompetencySpec holds the raw required/optional competency lists as
// produced by job-description parsing.
type CompetencySpec struct {
	Required []CompetencyEntry `json:"required_competencies,omitempty"`
	Optional []CompetencyEntry `json:"optional_competencies,omitempty"`
}

// CompetencyEntry is one raw requirement entry before normalization.
// Fields other than Name may be absent; the normalizer fills them in.
// Entries that already carry MatchThreshold and Importance are treated
// as normalized and pass through untouched.
type CompetencyEntry struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category,omitempty"`
	CanonicalName  string  `json:"canonical_name,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	MatchThreshold float64 `json:"match_threshold,omitempty"`
	Importance     string  `json:"importance,omitempty"`
}

// UnmarshalJSON accepts either a structured competency object or a bare
// skill-name string, upgrading the latter to {name, description: ""}.
func (e *CompetencyEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*e = CompetencyEntry{Name: name}
		return nil
	}

	type entry CompetencyEntry // avoid recursion
	var parsed entry
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*e = CompetencyEntry(parsed)
	return nil
}

// JobContext is a JobRecord with both competency lists normalized, ready
// for matching. Every competency in it has been through the normalizer.
type JobContext struct {
	ID       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	Company  string       `json:"company"`
	Required []Competency `json:"required_competencies"`
	Optional []Competency `json:"optional_competencies"`
}
