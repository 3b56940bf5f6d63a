package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// FeedbackRecord is one logged recruiter action
type FeedbackRecord struct {
	ID               uuid.UUID            `json:"id"`
	CandidateID      uuid.UUID            `json:"candidate_id"`
	JobID            uuid.UUID            `json:"job_id"`
	Action           types.FeedbackAction `json:"action"`
	UsedCompetencies []string             `json:"used_competencies"`
	Reason           string               `json:"reason,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// InsertFeedback logs a recruiter action and returns its ID
func (db *DB) InsertFeedback(ctx context.Context, rec *FeedbackRecord) (uuid.UUID, error) {
	competencies, err := json.Marshal(rec.UsedCompetencies)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal competencies: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO recruiter_feedback (candidate_id, job_id, action, used_competencies, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		rec.CandidateID, rec.JobID, string(rec.Action), competencies, rec.Reason,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert feedback: %w", err)
	}
	return id, nil
}

// AddFeedbackDelta accumulates a weight delta for one competency of one
// candidate. The candidate graph is rebuilt from scratch on every match,
// so these rows are the only place recruiter signal survives; the
// matcher re-applies them after adding competency nodes.
func (db *DB) AddFeedbackDelta(ctx context.Context, candidateID uuid.UUID, competencyName string, delta float64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO feedback_weights (candidate_id, competency, delta, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (candidate_id, competency) DO UPDATE SET
		   delta = feedback_weights.delta + $3, updated_at = NOW()`,
		candidateID, competencyName, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to add feedback delta for %s: %w", competencyName, err)
	}
	return nil
}

// Deltas returns the accumulated feedback deltas for a candidate keyed
// by canonical competency name. Satisfies matching.WeightStore.
func (db *DB) Deltas(ctx context.Context, candidateID uuid.UUID) (map[string]float64, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT competency, delta FROM feedback_weights WHERE candidate_id = $1`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback deltas: %w", err)
	}
	defer rows.Close()

	return scanDeltas(rows)
}

// scanDeltas drains the delta rows into a map. The rows error is checked
// after iteration so a mid-stream failure surfaces instead of returning
// a truncated map.
func scanDeltas(rows pgx.Rows) (map[string]float64, error) {
	deltas := make(map[string]float64)
	for rows.Next() {
		var name string
		var delta float64
		if err := rows.Scan(&name, &delta); err != nil {
			return nil, fmt.Errorf("failed to scan feedback delta: %w", err)
		}
		deltas[name] = delta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback deltas: %w", err)
	}
	return deltas, nil
}
