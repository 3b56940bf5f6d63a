// Package matching scores a candidate graph against a job's normalized
// competencies and produces an explainable match report.
package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/embedding"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Scoring constants
const (
	// maxCitations caps the evidence citations recorded per competency
	maxCitations = 3
	// skillOnlyPenalty discounts coverage when the only evidence is bare
	// skill tags with no narrative project or experience backing them
	skillOnlyPenalty = 0.7
	// optionalMultiplier keeps optional competencies from outweighing
	// required ones in the aggregate
	optionalMultiplier = 0.6
	requiredMultiplier = 1.0
)

// Job-to-competency edge weights
const (
	requiresEdgeWeight = 1.0
	prefersEdgeWeight  = 0.5
)

// WeightStore supplies accumulated recruiter-feedback deltas for a
// candidate, keyed by canonical competency name. The graph is rebuilt on
// every request, so feedback only survives through this store.
type WeightStore interface {
	Deltas(ctx context.Context, candidateID uuid.UUID) (map[string]float64, error)
}

// Matcher embeds job competencies into a candidate graph and scores
// coverage. A nil weight store disables feedback re-application.
type Matcher struct {
	enc     embedding.Encoder
	weights WeightStore
}

// NewMatcher creates a matcher using the given encoder and optional
// feedback weight store.
func NewMatcher(enc embedding.Encoder, weights WeightStore) *Matcher {
	return &Matcher{enc: enc, weights: weights}
}

// Match adds the job's competencies to the candidate graph as query-mode
// embedded nodes, scores each against every evidence node, and returns
// the match report. An encoder failure propagates as an error: callers
// must be able to tell "computed, strength 0" from "computation failed".
func (m *Matcher) Match(ctx context.Context, g *graph.Graph, job types.JobContext) (*types.MatchReport, error) {
	competencyNodes, err := m.addCompetencyNodes(ctx, g, job)
	if err != nil {
		return nil, err
	}

	if m.weights != nil {
		deltas, err := m.weights.Deltas(ctx, g.CandidateID)
		if err != nil {
			return nil, fmt.Errorf("failed to load feedback weights: %w", err)
		}
		graph.ApplyWeightDeltas(g, deltas)
	}

	evidence := g.EvidenceNodes()
	results := make([]types.CompetencyResult, 0, len(competencyNodes))
	for _, node := range competencyNodes {
		result := scoreCompetency(g, node, evidence)
		results = append(results, result)
	}

	report := &types.MatchReport{
		CandidateID: g.CandidateID,
		JobID:       job.ID,
		JobTitle:    job.Title,
		Results:     results,
		Summary:     summarize(results),
	}
	return report, nil
}

// addCompetencyNodes inserts one job node plus one node per competency,
// each embedded in query mode from "name. description". A competency
// whose text is empty gets no embedding and will always score missing.
func (m *Matcher) addCompetencyNodes(ctx context.Context, g *graph.Graph, job types.JobContext) ([]*graph.Node, error) {
	jobID := graph.NodeID{Type: graph.TypeJob, Ref: 0}
	if err := g.AddNode(&graph.Node{ID: jobID, Name: job.Title, Category: job.Company}); err != nil {
		return nil, err
	}

	all := make([]types.Competency, 0, len(job.Required)+len(job.Optional))
	all = append(all, job.Required...)
	all = append(all, job.Optional...)

	nodes := make([]*graph.Node, 0, len(all))
	for i := range all {
		comp := all[i]
		node := &graph.Node{
			ID:         graph.NodeID{Type: graph.TypeCompetency, Ref: i},
			Name:       comp.Name,
			Category:   string(comp.Category),
			Text:       comp.EmbeddingText(),
			Competency: &comp,
		}

		if node.Text != "" {
			vectors, err := m.enc.Encode(ctx, []string{node.Text}, true)
			if err != nil {
				return nil, fmt.Errorf("failed to embed competency %q: %w", comp.Name, err)
			}
			if len(vectors) == 1 {
				node.Embedding = vectors[0]
			}
		}

		if err := g.AddNode(node); err != nil {
			return nil, err
		}

		edge := &graph.Edge{From: jobID, To: node.ID, Relation: graph.RelRequires, Weight: requiresEdgeWeight}
		if comp.Importance != types.ImportanceRequired {
			edge.Relation = graph.RelPrefers
			edge.Weight = prefersEdgeWeight
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// scoreCompetency computes similarity against every evidence node and
// derives coverage, citations and earned points for one competency.
func scoreCompetency(g *graph.Graph, node *graph.Node, evidence []*graph.Node) types.CompetencyResult {
	comp := *node.Competency
	result := types.CompetencyResult{
		Competency:   comp,
		PointsBudget: comp.Weight * importanceMultiplier(comp.Importance),
	}

	if node.Embedding == nil {
		// Nothing to compare: the competency had no text to embed.
		result.BestSimilarity = -1
		result.Status = types.StatusMissing
		return result
	}

	type hit struct {
		node *graph.Node
		sim  float64
	}

	best := 0.0
	var hits []hit
	for _, ev := range evidence {
		sim := embedding.Cosine(node.Embedding, ev.Embedding)
		if sim > best {
			best = sim
		}
		if sim >= comp.MatchThreshold {
			hits = append(hits, hit{node: ev, sim: sim})
		}
	}

	// Stable sort keeps insertion order among equal similarities.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].sim > hits[j].sim
	})
	if len(hits) > maxCitations {
		hits = hits[:maxCitations]
	}

	cited := make([]types.EvidenceCitation, 0, len(hits))
	for _, h := range hits {
		cited = append(cited, types.EvidenceCitation{
			NodeID:     h.node.ID.String(),
			NodeType:   string(h.node.ID.Type),
			Name:       h.node.Name,
			Similarity: h.sim,
		})
	}

	coverage := 0.0
	if best > 0 {
		coverage = best / comp.MatchThreshold
		if coverage > 1.0 {
			coverage = 1.0
		}
	}
	// Skill-only evidence is weaker than a demonstrated project or role.
	// Empty citations skip the penalty: zero coverage needs no discount.
	if len(cited) > 0 && allSkillCitations(cited) {
		coverage *= skillOnlyPenalty
	}

	result.BestSimilarity = best
	result.Coverage = coverage
	result.PointsEarned = result.PointsBudget * coverage
	result.Citations = cited
	result.Status = status(best, comp.MatchThreshold)

	// Link cited evidence to the competency node so the exported graph
	// explains why the competency matched.
	for _, h := range hits {
		_ = g.AddEdge(&graph.Edge{From: h.node.ID, To: node.ID, Relation: graph.RelMatches, Weight: h.sim})
	}
	return result
}

func allSkillCitations(cited []types.EvidenceCitation) bool {
	for _, c := range cited {
		if c.NodeType != string(graph.TypeSkill) {
			return false
		}
	}
	return true
}

func status(best, threshold float64) types.MatchStatus {
	switch {
	case best >= threshold:
		return types.StatusMatched
	case best > 0:
		return types.StatusPartial
	default:
		return types.StatusMissing
	}
}

func importanceMultiplier(imp types.Importance) float64 {
	if imp == types.ImportanceRequired {
		return requiredMultiplier
	}
	return optionalMultiplier
}

// summarize aggregates per-competency results into the coverage summary.
// A zero total budget yields strength 0.0, never a division error.
func summarize(results []types.CompetencyResult) types.CoverageSummary {
	var summary types.CoverageSummary
	var earned, budget float64
	var reqEarned, reqBudget, optEarned, optBudget float64
	var reqMatched, reqTotal int

	for _, r := range results {
		earned += r.PointsEarned
		budget += r.PointsBudget

		if r.Competency.Importance == types.ImportanceRequired {
			reqEarned += r.PointsEarned
			reqBudget += r.PointsBudget
			reqTotal++
			if r.Status == types.StatusMatched {
				reqMatched++
			}
		} else {
			optEarned += r.PointsEarned
			optBudget += r.PointsBudget
		}

		switch r.Status {
		case types.StatusMatched:
			summary.MatchedCount++
		case types.StatusPartial:
			summary.PartialCount++
		case types.StatusMissing:
			summary.MissingCount++
		}
	}

	summary.OverallStrength = ratio(earned, budget)
	summary.RequiredStrength = ratio(reqEarned, reqBudget)
	summary.OptionalStrength = ratio(optEarned, optBudget)
	summary.RequiredCoverage = fmt.Sprintf("%d/%d", reqMatched, reqTotal)
	return summary
}

func ratio(earned, budget float64) float64 {
	if budget == 0 {
		return 0.0
	}
	return earned / budget
}
