package report

import (
	"fmt"
	"strings"

	"github.com/ipdlab/dilemma/internal/strategy"
	"github.com/ipdlab/dilemma/internal/tournament"
)

// strategyColors maps built-in strategies to DOT fill colors.
var strategyColors = map[string]string{
	strategy.NameCooperator:    "mediumseagreen",
	strategy.NameDefector:      "tomato",
	strategy.NameTitForTat:     "steelblue",
	strategy.NameTitForTwoTats: "skyblue",
	strategy.NameGrimTrigger:   "goldenrod",
	strategy.NameRandom:        "plum",
}

// RenderDOT produces a Graphviz DOT representation of the round-robin:
// one node per agent (colored by strategy, labeled with total score) and
// one undirected edge per completed match, labeled with the pair scores.
func RenderDOT(res *tournament.Result) string {
	var b strings.Builder
	b.WriteString("graph dilemma {\n")
	b.WriteString("  layout=circo;\n")
	b.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, s := range res.Standings {
		color := strategyColors[s.Strategy]
		if color == "" {
			color = "lightgray"
		}
		// Quote by hand: %q would double the \n escape Graphviz expects.
		b.WriteString(fmt.Sprintf("  %q [label=\"%s\\n%s: %d\", fillcolor=%q, tooltip=\"rank=%d\"];\n",
			s.Agent, s.Agent, s.Strategy, s.Score, color, s.Rank))
	}
	b.WriteString("\n")

	for _, m := range res.Matches {
		if m.AgentA == m.AgentB {
			// Self-play renders as a loop edge
			b.WriteString(fmt.Sprintf("  %q -- %q [label=\"%d\"];\n", m.AgentA, m.AgentA, m.ScoreA))
			continue
		}
		b.WriteString(fmt.Sprintf("  %q -- %q [label=\"%d:%d\"];\n",
			m.AgentA, m.AgentB, m.ScoreA, m.ScoreB))
	}

	b.WriteString("}\n")
	return b.String()
}
