// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobContext outputs a human-readable summary of the normalized job
// requirements.
func (p *Printer) PrintJobContext(jobCtx *types.JobContext) {
	if jobCtx == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", jobCtx.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", jobCtx.Title))
	sb.WriteString("\n")

	if len(jobCtx.Required) > 0 {
		sb.WriteString("Required Competencies:\n")
		count := min(len(jobCtx.Required), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := jobCtx.Required[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s, w=%.2f, t=%.2f)\n",
				c.Name, c.Category, c.Weight, c.MatchThreshold))
		}
		if len(jobCtx.Required) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jobCtx.Required)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(jobCtx.Optional) > 0 {
		sb.WriteString("Optional Competencies:\n")
		count := min(len(jobCtx.Optional), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jobCtx.Optional[i].Name))
		}
		if len(jobCtx.Optional) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jobCtx.Optional)-3))
		}
	}

	p.printBox("NORMALIZED JOB CONTEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchReport outputs the per-competency scoring outcome with the
// strongest evidence citation for each.
func (p *Printer) PrintMatchReport(report *types.MatchReport) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall strength:  %.2f\n", report.Summary.OverallStrength))
	sb.WriteString(fmt.Sprintf("Required coverage: %s\n", report.Summary.RequiredCoverage))
	sb.WriteString(fmt.Sprintf("Matched %d / partial %d / missing %d\n\n",
		report.Summary.MatchedCount, report.Summary.PartialCount, report.Summary.MissingCount))

	count := min(len(report.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		res := report.Results[i]
		sb.WriteString(fmt.Sprintf("%s %s\n", statusGlyph(res.Status), res.Competency.Name))
		sb.WriteString(fmt.Sprintf("    sim %.3f  coverage %.2f  %.2f/%.2f pts\n",
			res.BestSimilarity, res.Coverage, res.PointsEarned, res.PointsBudget))
		if len(res.Citations) > 0 {
			top := res.Citations[0]
			name := top.Name
			if len(name) > 35 {
				name = name[:32] + "..."
			}
			sb.WriteString(fmt.Sprintf("    via %s (%s)\n", name, top.NodeType))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(report.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more competencies", len(report.Results)-maxItemsToShow))
	}

	p.printBox("MATCH REPORT", sb.String())
}

// PrintGraphSummary outputs node and edge counts for a built evidence graph.
func (p *Printer) PrintGraphSummary(g *graph.Graph) {
	if g == nil {
		return
	}

	counts := make(map[graph.NodeType]int)
	for _, node := range g.Nodes() {
		counts[node.ID.Type]++
	}

	nodeTypes := make([]string, 0, len(counts))
	for nt := range counts {
		nodeTypes = append(nodeTypes, string(nt))
	}
	sort.Strings(nodeTypes)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", g.CandidateID))
	sb.WriteString(fmt.Sprintf("Nodes: %d   Edges: %d\n\n", len(g.Nodes()), len(g.Edges())))
	for _, nt := range nodeTypes {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", nt, counts[graph.NodeType(nt)]))
	}

	p.printBox("EVIDENCE GRAPH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelectedContent outputs which profile items were picked for the
// tailored application.
func (p *Printer) PrintSelectedContent(content *types.SelectedContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match strength: %.2f\n\n", content.MatchStrength))
	sb.WriteString(fmt.Sprintf("Projects:    %d\n", len(content.ProjectIDs)))
	sb.WriteString(fmt.Sprintf("Skills:      %d\n", len(content.SkillIDs)))
	sb.WriteString(fmt.Sprintf("Experience:  %d\n", len(content.ExperienceIDs)))
	sb.WriteString(fmt.Sprintf("Education:   %d\n", len(content.EducationIDs)))

	if len(content.MatchedCompetencies) > 0 {
		matched := strings.Join(content.MatchedCompetencies, ", ")
		if len(matched) > 45 {
			matched = matched[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMatched: %s\n", matched))
	}
	if len(content.MissingCompetencies) > 0 {
		missing := strings.Join(content.MissingCompetencies, ", ")
		if len(missing) > 45 {
			missing = missing[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Missing: %s\n", missing))
	}

	p.printBox("SELECTED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

func statusGlyph(status types.MatchStatus) string {
	switch status {
	case types.StatusMatched:
		return "✓"
	case types.StatusPartial:
		return "~"
	default:
		return "✗"
	}
}
