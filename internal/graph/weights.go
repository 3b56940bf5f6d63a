package graph

import (
	"github.com/jonathan/candidate-matcher/internal/competency"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Proficiency base weights for skill edges. Unrecognized levels fall
// back to a neutral 0.5.
const (
	beginnerBase     = 0.3
	intermediateBase = 0.6
	expertBase       = 1.0
	unknownBase      = 0.5
)

// Tenure contributes up to +0.3 at 3+ years, linear below that, so
// years alone can never saturate the weight.
const (
	yearsBoostPerYear = 0.1
	yearsBoostCap     = 0.3
)

// Feedback-adjusted edge weights stay within these bounds
const (
	feedbackMinWeight = 0.1
	feedbackMaxWeight = 1.0
)

// SkillEdgeWeight computes the weight of a skill edge from the declared
// proficiency level and years of experience, clamped to [0, 1].
func SkillEdgeWeight(proficiency string, years float64) float64 {
	var base float64
	switch proficiency {
	case types.ProficiencyBeginner:
		base = beginnerBase
	case types.ProficiencyIntermediate:
		base = intermediateBase
	case types.ProficiencyExpert:
		base = expertBase
	default:
		base = unknownBase
	}

	if years < 0 {
		years = 0
	}
	boost := years * yearsBoostPerYear
	if boost > yearsBoostCap {
		boost = yearsBoostCap
	}

	weight := base + boost
	if weight > 1.0 {
		weight = 1.0
	}
	return weight
}

// ApplyFeedback adjusts the weight of every incoming edge of each named
// competency node by the action's delta, clamped to [0.1, 1.0], and
// flags the edges as feedback-adjusted. The graph itself is transient;
// persisting the deltas so they survive a rebuild is the feedback
// store's job, not this function's.
func ApplyFeedback(g *Graph, fb types.Feedback) {
	delta := fb.Action.WeightDelta()
	for _, name := range fb.UsedCompetencies {
		canonical := competency.CanonicalSkillName(name)
		for _, node := range g.NodesOfType(TypeCompetency) {
			if !competencyNameMatches(node, name, canonical) {
				continue
			}
			for _, edge := range g.Incoming(node.ID) {
				edge.Weight = clampWeight(edge.Weight + delta)
				edge.FeedbackAdjusted = true
			}
		}
	}
}

// ApplyWeightDeltas re-applies persisted feedback deltas, keyed by
// canonical competency name, to the incoming edges of matching
// competency nodes on a freshly rebuilt graph.
func ApplyWeightDeltas(g *Graph, deltas map[string]float64) {
	if len(deltas) == 0 {
		return
	}
	for _, node := range g.NodesOfType(TypeCompetency) {
		if node.Competency == nil {
			continue
		}
		delta, ok := deltas[node.Competency.CanonicalName]
		if !ok || delta == 0 {
			continue
		}
		for _, edge := range g.Incoming(node.ID) {
			edge.Weight = clampWeight(edge.Weight + delta)
			edge.FeedbackAdjusted = true
		}
	}
}

func competencyNameMatches(node *Node, name, canonical string) bool {
	if node.Name == name || node.Name == canonical {
		return true
	}
	return node.Competency != nil && node.Competency.CanonicalName == name
}

func clampWeight(w float64) float64 {
	if w < feedbackMinWeight {
		return feedbackMinWeight
	}
	if w > feedbackMaxWeight {
		return feedbackMaxWeight
	}
	return w
}
