package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// LoadProfile reads a candidate profile JSON file, validates it against
// the profile schema when the schema file is locatable, and unmarshals
// it. Schema-load problems downgrade to a stderr warning; actual
// validation failures are errors.
func LoadProfile(path string) (*types.ProfileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	if err := validateAgainst("schemas/candidate_profile.schema.json", path); err != nil {
		return nil, fmt.Errorf("profile does not validate against schema: %w", err)
	}

	var profile types.ProfileRecord
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// LoadJob reads a job record JSON file and validates it the same way.
// An HTML description is converted to cleaned plain text before the
// record is returned.
func LoadJob(path string) (*types.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	if err := validateAgainst("schemas/job_competencies.schema.json", path); err != nil {
		return nil, fmt.Errorf("job does not validate against schema: %w", err)
	}

	var job types.JobRecord
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}

	if LooksLikeHTML(job.Description) {
		text, err := ExtractJobText(job.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to extract job description text: %w", err)
		}
		job.Description = CleanText(text)
	} else {
		job.Description = CleanText(job.Description)
	}

	return &job, nil
}

// validateAgainst runs schema validation when the schema can be found.
// Missing or unloadable schemas warn instead of failing so the CLI
// works from any working directory.
func validateAgainst(schemaRelPath, jsonPath string) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return nil
	}

	err := schemas.ValidateJSON(schemaPath, jsonPath)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: could not validate %s against schema: %v\n", jsonPath, err)
	return nil
}
