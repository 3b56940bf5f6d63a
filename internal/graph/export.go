package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// ExportedNode is the serializable form of a node
type ExportedNode struct {
	ID         NodeID            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Category   string            `json:"category,omitempty"`
	Text       string            `json:"text,omitempty"`
	Embedding  []float32         `json:"embedding,omitempty"`
	Competency *types.Competency `json:"competency,omitempty"`
}

// ExportedEdge is the serializable form of an edge
type ExportedEdge struct {
	From             NodeID   `json:"source"`
	To               NodeID   `json:"target"`
	Relation         Relation `json:"relation"`
	Weight           float64  `json:"weight"`
	Proficiency      string   `json:"proficiency,omitempty"`
	Years            float64  `json:"years,omitempty"`
	FeedbackAdjusted bool     `json:"feedback_adjusted,omitempty"`
}

// ExportedGraph is a JSON-serializable snapshot of a graph
type ExportedGraph struct {
	CandidateID uuid.UUID      `json:"candidate_id"`
	Nodes       []ExportedNode `json:"nodes"`
	Edges       []ExportedEdge `json:"edges"`
}

// Export snapshots the graph into its serializable representation,
// preserving insertion order.
func Export(g *Graph) ExportedGraph {
	out := ExportedGraph{
		CandidateID: g.CandidateID,
		Nodes:       make([]ExportedNode, 0, g.NodeCount()),
		Edges:       make([]ExportedEdge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, ExportedNode{
			ID:         n.ID,
			Name:       n.Name,
			Category:   n.Category,
			Text:       n.Text,
			Embedding:  n.Embedding,
			Competency: n.Competency,
		})
	}

	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, ExportedEdge{
			From:             e.From,
			To:               e.To,
			Relation:         e.Relation,
			Weight:           e.Weight,
			Proficiency:      e.Proficiency,
			Years:            e.Years,
			FeedbackAdjusted: e.FeedbackAdjusted,
		})
	}

	return out
}

// Import reconstructs a graph from its exported form. Node types, names
// and edge weights survive the round trip exactly.
func Import(data ExportedGraph) (*Graph, error) {
	g := New()
	g.CandidateID = data.CandidateID

	for _, n := range data.Nodes {
		if err := g.AddNode(&Node{
			ID:         n.ID,
			Name:       n.Name,
			Category:   n.Category,
			Text:       n.Text,
			Embedding:  n.Embedding,
			Competency: n.Competency,
		}); err != nil {
			return nil, fmt.Errorf("failed to import node %s: %w", n.ID, err)
		}
	}

	for _, e := range data.Edges {
		if err := g.AddEdge(&Edge{
			From:             e.From,
			To:               e.To,
			Relation:         e.Relation,
			Weight:           e.Weight,
			Proficiency:      e.Proficiency,
			Years:            e.Years,
			FeedbackAdjusted: e.FeedbackAdjusted,
		}); err != nil {
			return nil, fmt.Errorf("failed to import edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}
