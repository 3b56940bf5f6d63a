// Package preview computes and caches candidate x job match previews.
package preview

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/competency"
	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/matching"
	"github.com/jonathan/candidate-matcher/internal/selection"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Store persists cached previews. *db.DB satisfies it.
type Store interface {
	GetPreview(ctx context.Context, candidateID, jobID uuid.UUID) (*db.Preview, error)
	UpsertPreview(ctx context.Context, p *db.Preview) error
}

// Service serves previews from the cache, rebuilding the candidate
// graph and rescoring only when the cache misses, either source record
// changed, or a force refresh was requested.
type Service struct {
	store   Store
	builder *graph.Builder
	matcher *matching.Matcher
}

// NewService creates a preview service
func NewService(store Store, builder *graph.Builder, matcher *matching.Matcher) *Service {
	return &Service{store: store, builder: builder, matcher: matcher}
}

// GetOrCompute returns the preview for the pair, recomputing when
// stale. The second return value reports whether the result came from
// the cache.
func (s *Service) GetOrCompute(ctx context.Context, profile types.ProfileRecord, job types.JobRecord, forceRefresh bool) (*db.Preview, bool, error) {
	if !forceRefresh {
		cached, err := s.store.GetPreview(ctx, profile.ID, job.ID)
		if err != nil {
			return nil, false, err
		}
		if cached != nil && !cached.Stale(profile.UpdatedAt, job.UpdatedAt) {
			return cached, true, nil
		}
	}

	p, err := s.Compute(ctx, profile, job)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.UpsertPreview(ctx, p); err != nil {
		return nil, false, err
	}
	return p, false, nil
}

// Compute rebuilds the candidate graph, scores it against the job and
// assembles an uncached preview. The graph lives only for this call.
func (s *Service) Compute(ctx context.Context, profile types.ProfileRecord, job types.JobRecord) (*db.Preview, error) {
	g, err := s.builder.Build(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate graph: %w", err)
	}

	jobCtx := competency.BuildJobContext(job)
	report, err := s.matcher.Match(ctx, g, jobCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to match candidate %s against job %s: %w", profile.ID, job.ID, err)
	}

	content := selection.Select(g, report)

	return &db.Preview{
		CandidateID:        profile.ID,
		JobID:              job.ID,
		MatchStrength:      report.Summary.OverallStrength,
		RequiredCoverage:   report.Summary.RequiredCoverage,
		SelectedProjects:   len(content.ProjectIDs),
		SelectedSkills:     len(content.SkillIDs),
		SelectedContent:    content,
		CoverageSummary:    report.Summary,
		CandidateUpdatedAt: profile.UpdatedAt,
		JobUpdatedAt:       job.UpdatedAt,
	}, nil
}
