// Package selection chooses the profile content to surface in a tailored
// resume render from a scored candidate graph.
package selection

import (
	"sort"

	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Select produces the content set for a resume render. Current policy:
// include every project, skill, experience, education, publication and
// award regardless of match outcome — a resume should present the whole
// candidate. The match report contributes only the strength score and
// the matched/missing lists, so a future filtering policy can land here
// without touching the matcher.
func Select(g *graph.Graph, report *types.MatchReport) types.SelectedContent {
	content := types.SelectedContent{
		ProjectIDs:     nodeRefs(g, graph.TypeProject),
		SkillIDs:       nodeRefs(g, graph.TypeSkill),
		ExperienceIDs:  nodeRefs(g, graph.TypeExperience),
		EducationIDs:   nodeRefs(g, graph.TypeEducation),
		PublicationIDs: nodeRefs(g, graph.TypePublication),
		AwardIDs:       nodeRefs(g, graph.TypeAward),
	}

	if report != nil {
		content.MatchStrength = report.Summary.OverallStrength
		content.MatchedCompetencies = competencyNames(report.Matched())
		content.MissingCompetencies = competencyNames(report.Missing())
	}
	return content
}

// nodeRefs collects the entity refs of one node type as a sorted set,
// so repeated selections over the same report are identical.
func nodeRefs(g *graph.Graph, t graph.NodeType) []int {
	nodes := g.NodesOfType(t)
	refs := make([]int, 0, len(nodes))
	for _, n := range nodes {
		refs = append(refs, n.ID.Ref)
	}
	sort.Ints(refs)
	return refs
}

func competencyNames(results []types.CompetencyResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Competency.Name)
	}
	return names
}
