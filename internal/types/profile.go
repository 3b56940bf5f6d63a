// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRecord is the candidate profile snapshot handed over by the
// candidate-management service. It is the read-only input to the graph
// builder; the matcher never writes back to it.
type ProfileRecord struct {
	ID             uuid.UUID          `json:"id"`
	FullName       string             `json:"full_name"`
	Phone          string             `json:"phone,omitempty"`
	Location       string             `json:"location,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	PreferredRoles []string           `json:"preferred_roles,omitempty"`
	LinkedIn       string             `json:"linkedin,omitempty"`
	GitHub         string             `json:"github,omitempty"`
	Education      []EducationEntry   `json:"education,omitempty"`
	Experience     []ExperienceEntry  `json:"experience,omitempty"`
	Publications   []PublicationEntry `json:"publications,omitempty"`
	Awards         []AwardEntry       `json:"awards,omitempty"`
	Projects       []Project          `json:"projects,omitempty"`
	Skills         []CandidateSkill   `json:"skills,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field,omitempty"`
	CGPA        string `json:"cgpa,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
}

// ExperienceEntry represents one work experience record
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"` // "YYYY-MM"
	EndDate          string   `json:"end_date,omitempty"`   // "YYYY-MM" or empty for current
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// PublicationEntry represents one publication record
type PublicationEntry struct {
	Title       string `json:"title"`
	Venue       string `json:"venue,omitempty"`
	Date        string `json:"date,omitempty"`
	DOI         string `json:"doi,omitempty"`
	Description string `json:"description,omitempty"`
}

// AwardEntry represents one award or achievement record
type AwardEntry struct {
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Level        string `json:"level,omitempty"`
	Date         string `json:"date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Project represents a project completed by the candidate, used as
// evidence in the candidate graph.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Outcomes    []string  `json:"outcomes,omitempty"`
	Tools       []ToolRef `json:"tools,omitempty"`
}

// ToolRef references a tool used in a project
type ToolRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// SkillRef references an entry in the master skill list
type SkillRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Proficiency levels for candidate skills
const (
	ProficiencyBeginner     = "BEGINNER"
	ProficiencyIntermediate = "INTERMEDIATE"
	ProficiencyExpert       = "EXPERT"
)

// CandidateSkill links a candidate to a skill with proficiency metadata.
// AcquiredFromProject holds the originating project ID, or 0 when the
// skill is declared directly on the profile.
type CandidateSkill struct {
	Skill               SkillRef `json:"skill"`
	ProficiencyLevel    string   `json:"proficiency_level,omitempty"`
	YearsOfExperience   float64  `json:"years_of_experience,omitempty"`
	AcquiredFromProject int      `json:"acquired_from_project,omitempty"`
}
