package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// PreviewRequest asks for the match preview of one candidate x job pair.
// Both records ride in the payload; the matcher holds no copy of either.
type PreviewRequest struct {
	Profile      types.ProfileRecord `json:"profile" validate:"required"`
	Job          types.JobRecord     `json:"job" validate:"required"`
	ForceRefresh bool                `json:"force_refresh,omitempty"`
}

// PreviewResponse wraps the preview with its cache provenance
type PreviewResponse struct {
	Preview *db.Preview `json:"preview"`
	Cached  bool        `json:"cached"`
}

// handleCreatePreview computes or returns the cached preview for a pair
func (s *Server) handleCreatePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Profile.ID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "profile.id is required")
		return
	}
	if req.Job.ID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "job.id is required")
		return
	}

	p, cached, err := s.previews.GetOrCompute(r.Context(), req.Profile, req.Job, req.ForceRefresh)
	if err != nil {
		log.Printf("preview failed for candidate %s job %s: %v", req.Profile.ID, req.Job.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to compute preview: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, PreviewResponse{Preview: p, Cached: cached})
}

// FeedbackRequest records a recruiter action against a candidate x job pair
type FeedbackRequest struct {
	CandidateID      uuid.UUID `json:"candidate_id" validate:"required"`
	JobID            uuid.UUID `json:"job_id" validate:"required"`
	Action           string    `json:"action" validate:"required"`
	UsedCompetencies []string  `json:"used_competencies,omitempty"`
	Reason           string    `json:"reason,omitempty"`
}

// handleFeedback logs the recruiter action, folds its weight delta into
// the candidate's accumulated competency weights, and invalidates the
// cached preview so the next request rescores with the new weights.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	action := types.FeedbackAction(req.Action)
	if !action.Valid() {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	ctx := r.Context()
	id, err := s.db.InsertFeedback(ctx, &db.FeedbackRecord{
		CandidateID:      req.CandidateID,
		JobID:            req.JobID,
		Action:           action,
		UsedCompetencies: req.UsedCompetencies,
		Reason:           req.Reason,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to record feedback: "+err.Error())
		return
	}

	delta := action.WeightDelta()
	keys := feedbackWeightKeys(req.UsedCompetencies)
	for _, key := range keys {
		if err := s.db.AddFeedbackDelta(ctx, req.CandidateID, key, delta); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to update weights: "+err.Error())
			return
		}
	}

	if len(keys) > 0 {
		if err := s.db.DeletePreview(ctx, req.CandidateID, req.JobID); err != nil {
			log.Printf("failed to invalidate preview for candidate %s job %s: %v", req.CandidateID, req.JobID, err)
		}
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":           id,
		"weight_delta": delta,
		"adjusted":     len(keys),
	})
}

// feedbackWeightKeys maps the reported competency names to delta storage
// keys: trimmed, de-duplicated, empties dropped. Deltas persist under the
// competency's canonical name (its trimmed name), so the same key the
// matcher later looks up.
func feedbackWeightKeys(names []string) []string {
	seen := make(map[string]bool, len(names))
	keys := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.TrimSpace(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// ExportRequest asks for a candidate's evidence graph in exported form
type ExportRequest struct {
	Profile types.ProfileRecord `json:"profile" validate:"required"`
}

// handleExportGraph builds the candidate graph and returns its exported
// representation without scoring it against any job.
func (s *Server) handleExportGraph(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Profile.ID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "profile.id is required")
		return
	}

	g, err := s.builder.Build(r.Context(), req.Profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to build graph: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, graph.Export(g))
}

// extractValidationErrors turns the first validator error into a message
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
