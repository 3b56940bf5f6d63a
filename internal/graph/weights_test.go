package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// feedbackGraph wires a skill node into a competency node so feedback
// has an incoming edge to adjust.
func feedbackGraph(t *testing.T, edgeWeight float64) *Graph {
	t.Helper()

	g := New()
	skillID := NodeID{Type: TypeSkill, Ref: 1}
	compID := NodeID{Type: TypeCompetency, Ref: 0}

	require.NoError(t, g.AddNode(&Node{ID: skillID, Name: "Go"}))
	require.NoError(t, g.AddNode(&Node{
		ID:   compID,
		Name: "Go",
		Competency: &types.Competency{
			Name:          "Go",
			CanonicalName: "Go",
			Importance:    types.ImportanceRequired,
		},
	}))
	require.NoError(t, g.AddEdge(&Edge{
		From: skillID, To: compID, Relation: RelMatches, Weight: edgeWeight,
	}))
	return g
}

func TestApplyFeedback_AdjustsMatchingEdges(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyFeedback(g, types.Feedback{
		Action:           types.ActionShortlist,
		UsedCompetencies: []string{"Go"},
	})

	edge := g.Edges()[0]
	assert.InDelta(t, 0.6, edge.Weight, 1e-9)
	assert.True(t, edge.FeedbackAdjusted)
}

func TestApplyFeedback_RejectLowersWeight(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyFeedback(g, types.Feedback{
		Action:           types.ActionReject,
		UsedCompetencies: []string{"Go"},
	})

	assert.InDelta(t, 0.4, g.Edges()[0].Weight, 1e-9)
}

func TestApplyFeedback_ClampsAtBounds(t *testing.T) {
	high := feedbackGraph(t, 0.98)
	ApplyFeedback(high, types.Feedback{Action: types.ActionHire, UsedCompetencies: []string{"Go"}})
	assert.Equal(t, 1.0, high.Edges()[0].Weight)

	low := feedbackGraph(t, 0.12)
	ApplyFeedback(low, types.Feedback{Action: types.ActionReject, UsedCompetencies: []string{"Go"}})
	assert.Equal(t, 0.1, low.Edges()[0].Weight)
}

func TestApplyFeedback_MatchesThroughCanonicalName(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	// "golang" canonicalizes to "Go", which matches the node name.
	ApplyFeedback(g, types.Feedback{
		Action:           types.ActionInterview,
		UsedCompetencies: []string{"golang"},
	})

	assert.InDelta(t, 0.6, g.Edges()[0].Weight, 1e-9)
}

func TestApplyFeedback_IgnoresUnknownCompetency(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyFeedback(g, types.Feedback{
		Action:           types.ActionShortlist,
		UsedCompetencies: []string{"Rust"},
	})

	edge := g.Edges()[0]
	assert.Equal(t, 0.5, edge.Weight)
	assert.False(t, edge.FeedbackAdjusted)
}

func TestApplyWeightDeltas(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyWeightDeltas(g, map[string]float64{"Go": 0.3})

	edge := g.Edges()[0]
	assert.InDelta(t, 0.8, edge.Weight, 1e-9)
	assert.True(t, edge.FeedbackAdjusted)
}

func TestApplyWeightDeltas_ClampsAccumulatedDelta(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyWeightDeltas(g, map[string]float64{"Go": -2.0})

	assert.Equal(t, 0.1, g.Edges()[0].Weight)
}

func TestApplyWeightDeltas_SkipsZeroAndMissing(t *testing.T) {
	g := feedbackGraph(t, 0.5)

	ApplyWeightDeltas(g, nil)
	ApplyWeightDeltas(g, map[string]float64{"Go": 0, "Rust": 0.2})

	edge := g.Edges()[0]
	assert.Equal(t, 0.5, edge.Weight)
	assert.False(t, edge.FeedbackAdjusted)
}

func TestClampWeight(t *testing.T) {
	assert.Equal(t, 0.1, clampWeight(-0.5))
	assert.Equal(t, 1.0, clampWeight(1.5))
	assert.Equal(t, 0.7, clampWeight(0.7))
}
