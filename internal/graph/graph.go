// Package graph builds and scores the candidate knowledge graph: one node
// per unit of candidate evidence, each carrying an embedding of its
// composed text, connected by typed weighted edges.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// NodeType identifies the kind of entity a node represents
type NodeType string

// Node types
const (
	TypeCandidate   NodeType = "Candidate"
	TypeExperience  NodeType = "Experience"
	TypeEducation   NodeType = "Education"
	TypePublication NodeType = "Publication"
	TypeAward       NodeType = "Award"
	TypeProject     NodeType = "Project"
	TypeSkill       NodeType = "Skill"
	TypeTool        NodeType = "Tool"
	TypeJob         NodeType = "Job"
	TypeCompetency  NodeType = "Competency"
)

// Relation labels an edge with its structural meaning
type Relation string

// Edge relations
const (
	RelHasExperience    Relation = "HAS_EXPERIENCE"
	RelHasEducation     Relation = "HAS_EDUCATION"
	RelHasPublication   Relation = "HAS_PUBLICATION"
	RelHasAward         Relation = "HAS_AWARD"
	RelHasProject       Relation = "HAS_PROJECT"
	RelHasSkill         Relation = "HAS_SKILL"
	RelDemonstrates     Relation = "DEMONSTRATES"
	RelImplementedUsing Relation = "IMPLEMENTED_USING"
	RelRequires         Relation = "REQUIRES"
	RelPrefers          Relation = "PREFERS"
	RelMatches          Relation = "MATCHES"
)

// NodeID is a typed node key. Ref is the entity ID for projects, skills
// and tools, and the list index for profile section entries. Keeping the
// parts separate avoids parsing identifiers back out of strings.
type NodeID struct {
	Type NodeType `json:"type"`
	Ref  int      `json:"ref"`
}

func (id NodeID) String() string {
	return fmt.Sprintf("%s/%d", id.Type, id.Ref)
}

// Node is one unit of candidate or job evidence. Embedding is nil when
// the composed text was empty. Competency is set only on competency
// nodes added by the matcher.
type Node struct {
	ID         NodeID
	Name       string
	Category   string
	Text       string
	Embedding  []float32
	Competency *types.Competency
}

// Edge is a directed weighted relation between two nodes
type Edge struct {
	From             NodeID
	To               NodeID
	Relation         Relation
	Weight           float64
	Proficiency      string
	Years            float64
	FeedbackAdjusted bool
}

// Graph is an in-memory candidate graph, rebuilt from scratch for every
// matching request and discarded afterwards. It is not safe for
// concurrent mutation.
type Graph struct {
	// CandidateID ties the transient graph back to the durable profile
	CandidateID uuid.UUID

	nodes    map[NodeID]*Node
	order    []NodeID
	edges    []*Edge
	incoming map[NodeID][]*Edge
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		nodes:    make(map[NodeID]*Node),
		incoming: make(map[NodeID][]*Edge),
	}
}

// AddNode inserts a node. Adding a duplicate ID is an error: node IDs
// are unique within a graph instance.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("graph: duplicate node %s", n.ID)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge inserts a directed edge. Both endpoints must exist.
func (g *Graph) AddEdge(e *Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("graph: edge source %s not found", e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("graph: edge target %s not found", e.To)
	}
	g.edges = append(g.edges, e)
	g.incoming[e.To] = append(g.incoming[e.To], e)
	return nil
}

// HasNode reports whether the node exists
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID, or nil
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodesOfType returns the nodes of one type in insertion order
func (g *Graph) NodesOfType(t NodeType) []*Node {
	var out []*Node
	for _, id := range g.order {
		if id.Type == t {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// Incoming returns the edges pointing at the given node
func (g *Graph) Incoming(id NodeID) []*Edge {
	return g.incoming[id]
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// evidenceTypes are the node types eligible to serve as matched evidence
var evidenceTypes = map[NodeType]bool{
	TypeCandidate:   true,
	TypeExperience:  true,
	TypeEducation:   true,
	TypePublication: true,
	TypeAward:       true,
	TypeProject:     true,
	TypeSkill:       true,
}

// EvidenceNodes returns the embedded nodes eligible to match a
// competency: skills, projects, experiences, education, publications,
// awards and the candidate node. Nodes without an embedding are skipped.
func (g *Graph) EvidenceNodes() []*Node {
	var out []*Node
	for _, id := range g.order {
		if !evidenceTypes[id.Type] {
			continue
		}
		if n := g.nodes[id]; n.Embedding != nil {
			out = append(out, n)
		}
	}
	return out
}
