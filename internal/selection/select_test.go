package selection

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/embedding"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

func selectionGraph(t *testing.T) *graph.Graph {
	t.Helper()
	profile := types.ProfileRecord{
		ID:       uuid.New(),
		FullName: "Jane Doe",
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Role: "Engineer"},
		},
		Education: []types.EducationEntry{
			{Degree: "BSc", Institution: "UofT"},
		},
		Projects: []types.Project{
			{ID: 7, Title: "Search service"},
			{ID: 3, Title: "Billing"},
		},
		Skills: []types.CandidateSkill{
			{Skill: types.SkillRef{ID: 2, Name: "Go"}},
			{Skill: types.SkillRef{ID: 9, Name: "PostgreSQL"}},
		},
	}
	g, err := graph.NewBuilder(embedding.StaticEncoder{}).Build(context.Background(), profile)
	require.NoError(t, err)
	return g
}

func TestSelect_IncludesAllContent(t *testing.T) {
	g := selectionGraph(t)

	content := Select(g, nil)

	assert.Equal(t, []int{3, 7}, content.ProjectIDs, "refs come back sorted")
	assert.Equal(t, []int{2, 9}, content.SkillIDs)
	assert.Equal(t, []int{0}, content.ExperienceIDs)
	assert.Equal(t, []int{0}, content.EducationIDs)
	assert.Empty(t, content.PublicationIDs)
	assert.Empty(t, content.AwardIDs)
}

func TestSelect_CarriesReportSignals(t *testing.T) {
	g := selectionGraph(t)
	report := &types.MatchReport{
		Results: []types.CompetencyResult{
			{Competency: types.Competency{Name: "Go"}, Status: types.StatusMatched},
			{Competency: types.Competency{Name: "Kafka"}, Status: types.StatusMissing},
			{Competency: types.Competency{Name: "Docker"}, Status: types.StatusPartial},
		},
		Summary: types.CoverageSummary{OverallStrength: 0.74},
	}

	content := Select(g, report)

	assert.Equal(t, 0.74, content.MatchStrength)
	assert.Equal(t, []string{"Go"}, content.MatchedCompetencies)
	assert.Equal(t, []string{"Kafka"}, content.MissingCompetencies)
}

func TestSelect_Deterministic(t *testing.T) {
	g := selectionGraph(t)

	first := Select(g, nil)
	second := Select(g, nil)

	assert.Equal(t, first, second)
}
