package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/competency"
	"github.com/jonathan/candidate-matcher/internal/embedding"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// embedConcurrency bounds the parallel embedding calls during a build
const embedConcurrency = 4

// Overweights for independently verified evidence
const (
	publicationEdgeWeight = 1.2
	awardEdgeWeight       = 1.1
)

// Builder constructs candidate graphs. Every build is a full synchronous
// rebuild from the profile record; nothing is diffed against a previous
// graph.
type Builder struct {
	enc embedding.Encoder
}

// NewBuilder creates a graph builder using the given encoder
func NewBuilder(enc embedding.Encoder) *Builder {
	return &Builder{enc: enc}
}

// Build constructs a fresh graph from the candidate profile. Every node
// with non-empty composed text is embedded in document mode before the
// graph is returned; embedding calls fan out across nodes since they are
// independent.
func (b *Builder) Build(ctx context.Context, profile types.ProfileRecord) (*Graph, error) {
	g := New()
	g.CandidateID = profile.ID

	candidateID := NodeID{Type: TypeCandidate, Ref: 0}
	if err := g.AddNode(&Node{
		ID:   candidateID,
		Name: profile.FullName,
		Text: composeCandidateText(profile),
	}); err != nil {
		return nil, err
	}

	for i, exp := range profile.Experience {
		id := NodeID{Type: TypeExperience, Ref: i}
		if err := g.AddNode(&Node{
			ID:   id,
			Name: strings.TrimSpace(exp.Role + " at " + exp.Company),
			Text: composeExperienceText(exp),
		}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(&Edge{From: candidateID, To: id, Relation: RelHasExperience, Weight: 1.0}); err != nil {
			return nil, err
		}
	}

	for i, edu := range profile.Education {
		id := NodeID{Type: TypeEducation, Ref: i}
		if err := g.AddNode(&Node{
			ID:   id,
			Name: strings.TrimSpace(edu.Degree),
			Text: composeEducationText(edu),
		}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(&Edge{From: candidateID, To: id, Relation: RelHasEducation, Weight: 1.0}); err != nil {
			return nil, err
		}
	}

	// Publications and awards are deliberately overweighted: they are
	// strong evidence verified outside the candidate's own narrative.
	for i, pub := range profile.Publications {
		id := NodeID{Type: TypePublication, Ref: i}
		if err := g.AddNode(&Node{
			ID:   id,
			Name: pub.Title,
			Text: composePublicationText(pub),
		}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(&Edge{From: candidateID, To: id, Relation: RelHasPublication, Weight: publicationEdgeWeight}); err != nil {
			return nil, err
		}
	}

	for i, award := range profile.Awards {
		id := NodeID{Type: TypeAward, Ref: i}
		if err := g.AddNode(&Node{
			ID:   id,
			Name: award.Title,
			Text: composeAwardText(award),
		}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(&Edge{From: candidateID, To: id, Relation: RelHasAward, Weight: awardEdgeWeight}); err != nil {
			return nil, err
		}
	}

	tools := newDedupIndex()
	for _, project := range profile.Projects {
		id := NodeID{Type: TypeProject, Ref: project.ID}
		if err := g.AddNode(&Node{
			ID:   id,
			Name: project.Title,
			Text: composeProjectText(project),
		}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(&Edge{From: candidateID, To: id, Relation: RelHasProject, Weight: 1.0}); err != nil {
			return nil, err
		}

		for _, tool := range project.Tools {
			toolID, created := tools.resolve(TypeTool, tool.ID, tool.Name)
			if created {
				if err := g.AddNode(&Node{
					ID:       toolID,
					Name:     competency.CanonicalSkillName(tool.Name),
					Category: tool.Category,
					Text:     composeNamedText(tool.Name, tool.Category),
				}); err != nil {
					return nil, err
				}
			}
			if err := g.AddEdge(&Edge{From: id, To: toolID, Relation: RelImplementedUsing, Weight: 1.0}); err != nil {
				return nil, err
			}
		}
	}

	skills := newDedupIndex()
	for _, cs := range profile.Skills {
		skillID, created := skills.resolve(TypeSkill, cs.Skill.ID, cs.Skill.Name)
		if created {
			if err := g.AddNode(&Node{
				ID:       skillID,
				Name:     competency.CanonicalSkillName(cs.Skill.Name),
				Category: cs.Skill.Category,
				Text:     composeNamedText(cs.Skill.Name, cs.Skill.Category),
			}); err != nil {
				return nil, err
			}
		}

		weight := SkillEdgeWeight(cs.ProficiencyLevel, cs.YearsOfExperience)
		edge := &Edge{
			To:          skillID,
			Weight:      weight,
			Proficiency: cs.ProficiencyLevel,
			Years:       cs.YearsOfExperience,
		}

		projectID := NodeID{Type: TypeProject, Ref: cs.AcquiredFromProject}
		if cs.AcquiredFromProject != 0 && g.HasNode(projectID) {
			edge.From = projectID
			edge.Relation = RelDemonstrates
		} else {
			edge.From = candidateID
			edge.Relation = RelHasSkill
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}

	if err := b.embedNodes(ctx, g.Nodes()); err != nil {
		return nil, err
	}
	return g, nil
}

// embedNodes computes document-mode embeddings for every node with
// non-empty composed text. Each goroutine writes only its own node.
func (b *Builder) embedNodes(ctx context.Context, nodes []*Node) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(embedConcurrency)

	for _, node := range nodes {
		if node.Text == "" {
			continue
		}
		node := node
		eg.Go(func() error {
			vectors, err := b.enc.Encode(ctx, []string{node.Text}, false)
			if err != nil {
				return fmt.Errorf("failed to embed node %s: %w", node.ID, err)
			}
			if len(vectors) == 1 {
				node.Embedding = vectors[0]
			}
			return nil
		})
	}

	return eg.Wait()
}

// dedupIndex assigns one node per distinct skill or tool. Entities that
// arrive without an ID get a synthetic negative ref keyed on the
// canonical name, so repeated mentions still collapse onto one node.
type dedupIndex struct {
	byKey map[string]NodeID
	next  int
}

func newDedupIndex() *dedupIndex {
	return &dedupIndex{byKey: make(map[string]NodeID), next: -1}
}

func (d *dedupIndex) resolve(t NodeType, id int, name string) (NodeID, bool) {
	key := strconv.Itoa(id)
	if id == 0 {
		key = strings.ToLower(competency.CanonicalSkillName(name))
	}
	if existing, ok := d.byKey[key]; ok {
		return existing, false
	}

	ref := id
	if ref == 0 {
		ref = d.next
		d.next--
	}
	nodeID := NodeID{Type: t, Ref: ref}
	d.byKey[key] = nodeID
	return nodeID, true
}

// composeCandidateText joins the profile's narrative fields as sentences
func composeCandidateText(p types.ProfileRecord) string {
	return joinSentences(
		p.Summary,
		strings.Join(p.PreferredRoles, ", "),
		p.Location,
		p.Phone,
	)
}

func composeExperienceText(e types.ExperienceEntry) string {
	role := strings.TrimSpace(e.Role)
	if e.Company != "" {
		role = strings.TrimSpace(role + " at " + e.Company)
	}
	return joinSentences(
		role,
		e.Location,
		dateRange(e.StartDate, e.EndDate),
		strings.Join(e.Responsibilities, ". "),
	)
}

func composeEducationText(e types.EducationEntry) string {
	var years string
	if e.StartYear > 0 || e.EndYear > 0 {
		years = dateRange(yearString(e.StartYear), yearString(e.EndYear))
	}
	var cgpa string
	if e.CGPA != "" {
		cgpa = "CGPA " + e.CGPA
	}
	return joinSentences(e.Degree, e.Institution, e.Field, cgpa, years)
}

func composePublicationText(p types.PublicationEntry) string {
	return joinSentences(p.Title, p.Venue, p.Description, p.DOI)
}

func composeAwardText(a types.AwardEntry) string {
	return joinSentences(a.Title, a.Organization, a.Level, a.Description)
}

func composeProjectText(p types.Project) string {
	return joinSentences(p.Title, p.Description, strings.Join(p.Outcomes, ". "))
}

func composeNamedText(name, category string) string {
	return joinSentences(name, category)
}

// joinSentences joins the non-empty parts with ". ", trimming stray
// whitespace from each.
func joinSentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ". ")
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - present"
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
