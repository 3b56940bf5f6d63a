package competency

import "github.com/jonathan/candidate-matcher/internal/types"

// BuildJobContext turns a job record into the normalized matching input.
// When the LLM collaborator produced no structured competencies, the
// plain required/optional skill lists are upgraded to bare competencies
// with an empty description.
func BuildJobContext(job types.JobRecord) types.JobContext {
	required := job.Competencies.Required
	optional := job.Competencies.Optional

	if len(required) == 0 && len(job.RequiredSkills) > 0 {
		required = entriesFromSkills(job.RequiredSkills)
	}
	if len(optional) == 0 && len(job.OptionalSkills) > 0 {
		optional = entriesFromSkills(job.OptionalSkills)
	}

	return types.JobContext{
		ID:       job.ID,
		Title:    job.Title,
		Company:  job.Company,
		Required: Normalize(required, types.ImportanceRequired),
		Optional: Normalize(optional, types.ImportanceOptional),
	}
}

func entriesFromSkills(skills []string) []types.CompetencyEntry {
	entries := make([]types.CompetencyEntry, 0, len(skills))
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		entries = append(entries, types.CompetencyEntry{Name: skill})
	}
	return entries
}
