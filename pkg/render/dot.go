package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/g6conv/pkg/graph6"
)

// ToDOT writes g as plain DOT text. Vertices are numbered from 0.
//
// Undirected graphs emit `graph {` and one `i -- j;` per edge with i < j.
// Directed graphs emit `digraph {` and one `i -> j;` per arc; self-loops are
// left out. A positive id names the graph graph_<id>; it never appears in
// edge statements.
func ToDOT(g *graph6.Graph, id int) string {
	var b strings.Builder

	keyword, op := "graph", "--"
	if g.Directed() {
		keyword, op = "digraph", "->"
	}

	b.WriteString(keyword)
	if id > 0 {
		fmt.Fprintf(&b, " graph_%d", id)
	}
	b.WriteString(" {")

	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		fmt.Fprintf(&b, "\n  %d %s %d;", e.From, op, e.To)
	}

	b.WriteString("\n}")
	return b.String()
}
