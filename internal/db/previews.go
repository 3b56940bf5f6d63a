package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetPreview retrieves the cached preview for a (candidate, job) pair.
// Returns nil without error when no preview exists.
func (db *DB) GetPreview(ctx context.Context, candidateID, jobID uuid.UUID) (*Preview, error) {
	var p Preview
	var contentBytes, summaryBytes []byte

	err := db.pool.QueryRow(ctx,
		`SELECT candidate_id, job_id, match_strength, required_coverage,
		        selected_projects, selected_skills, selected_content,
		        coverage_summary, candidate_updated_at, job_updated_at, computed_at
		 FROM application_previews
		 WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&p.CandidateID, &p.JobID, &p.MatchStrength, &p.RequiredCoverage,
		&p.SelectedProjects, &p.SelectedSkills, &contentBytes,
		&summaryBytes, &p.CandidateUpdatedAt, &p.JobUpdatedAt, &p.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preview: %w", err)
	}

	if err := json.Unmarshal(contentBytes, &p.SelectedContent); err != nil {
		return nil, fmt.Errorf("failed to decode selected content: %w", err)
	}
	if err := json.Unmarshal(summaryBytes, &p.CoverageSummary); err != nil {
		return nil, fmt.Errorf("failed to decode coverage summary: %w", err)
	}
	return &p, nil
}

// UpsertPreview stores a freshly computed preview, replacing any prior
// row for the pair. The unique constraint on (candidate_id, job_id)
// guarantees at most one row per key under concurrent computation; the
// timestamp comparison on read resolves which writer's result survives.
func (db *DB) UpsertPreview(ctx context.Context, p *Preview) error {
	contentBytes, err := json.Marshal(p.SelectedContent)
	if err != nil {
		return fmt.Errorf("failed to marshal selected content: %w", err)
	}
	summaryBytes, err := json.Marshal(p.CoverageSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal coverage summary: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO application_previews
		   (candidate_id, job_id, match_strength, required_coverage,
		    selected_projects, selected_skills, selected_content,
		    coverage_summary, candidate_updated_at, job_updated_at, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
		   match_strength = $3, required_coverage = $4,
		   selected_projects = $5, selected_skills = $6,
		   selected_content = $7, coverage_summary = $8,
		   candidate_updated_at = $9, job_updated_at = $10, computed_at = NOW()`,
		p.CandidateID, p.JobID, p.MatchStrength, p.RequiredCoverage,
		p.SelectedProjects, p.SelectedSkills, contentBytes,
		summaryBytes, p.CandidateUpdatedAt, p.JobUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preview: %w", err)
	}
	return nil
}

// DeletePreview removes the cached preview for a pair, forcing the next
// request to recompute.
func (db *DB) DeletePreview(ctx context.Context, candidateID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM application_previews WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}
	return nil
}
