package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

func TestPrintJobContext(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobCtx := &types.JobContext{
		Company: "Acme Corp",
		Title:   "Senior Engineer",
		Required: []types.Competency{
			{Name: "Go", Category: types.CategoryTechnicalCore, Weight: 1.0, MatchThreshold: 0.38},
			{Name: "Kubernetes", Category: types.CategoryPlatform, Weight: 0.9, MatchThreshold: 0.37},
		},
		Optional: []types.Competency{
			{Name: "Rust", Category: types.CategoryTechnicalCore, Weight: 1.0, MatchThreshold: 0.38},
		},
	}

	p.PrintJobContext(jobCtx)
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED JOB CONTEXT")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Rust")
}

func TestPrintJobContext_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobContext(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.MatchReport{
		Results: []types.CompetencyResult{
			{
				Competency:     types.Competency{Name: "Go"},
				Status:         types.StatusMatched,
				BestSimilarity: 0.82,
				Coverage:       1.0,
				PointsEarned:   1.0,
				PointsBudget:   1.0,
				Citations: []types.EvidenceCitation{
					{NodeID: "skill/3", NodeType: "skill", Name: "Go", Similarity: 0.82},
				},
			},
			{
				Competency:     types.Competency{Name: "Terraform"},
				Status:         types.StatusMissing,
				BestSimilarity: -1,
			},
		},
		Summary: types.CoverageSummary{
			OverallStrength:  0.5,
			RequiredCoverage: "1/2",
			MatchedCount:     1,
			MissingCount:     1,
		},
	}

	p.PrintMatchReport(report)
	output := buf.String()

	assert.Contains(t, output, "MATCH REPORT")
	assert.Contains(t, output, "1/2")
	assert.Contains(t, output, "✓ Go")
	assert.Contains(t, output, "✗ Terraform")
	assert.Contains(t, output, "via Go (skill)")
}

func TestPrintGraphSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	g := graph.New()
	g.CandidateID = uuid.New()

	candidate := graph.NodeID{Type: graph.TypeCandidate, Ref: 1}
	skill := graph.NodeID{Type: graph.TypeSkill, Ref: 2}
	require.NoError(t, g.AddNode(&graph.Node{ID: candidate, Name: "Jane"}))
	require.NoError(t, g.AddNode(&graph.Node{ID: skill, Name: "Go"}))
	require.NoError(t, g.AddEdge(&graph.Edge{From: candidate, To: skill, Relation: graph.RelHasSkill, Weight: 0.8}))

	p.PrintGraphSummary(g)
	output := buf.String()

	assert.Contains(t, output, "EVIDENCE GRAPH")
	assert.Contains(t, output, "Nodes: 2   Edges: 1")
	assert.Contains(t, output, string(graph.TypeSkill))
}

func TestPrintSelectedContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	content := &types.SelectedContent{
		ProjectIDs:          []int{1, 2},
		SkillIDs:            []int{3},
		MatchStrength:       0.74,
		MatchedCompetencies: []string{"Go", "Kubernetes"},
		MissingCompetencies: []string{"Terraform"},
	}

	p.PrintSelectedContent(content)
	output := buf.String()

	assert.Contains(t, output, "SELECTED CONTENT")
	assert.Contains(t, output, "0.74")
	assert.Contains(t, output, "Projects:    2")
	assert.Contains(t, output, "Go, Kubernetes")
	assert.Contains(t, output, "Terraform")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobCtx := &types.JobContext{
		Company: "A Very Long Company Name That Should Be Truncated To Fit",
		Title:   "Senior Staff Principal Distinguished Engineer Level 99",
	}

	p.PrintJobContext(jobCtx)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
