package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/g6conv/pkg/graph6"
)

// ToNET writes g in Pajek NET format:
//
//	*Vertices 3
//	1 "0"
//	2 "1"
//	3 "2"
//	*Edges
//	1 2
//
// Pajek numbers vertices from 1; each label is the 0-based index. Undirected
// graphs list every edge once under *Edges, directed graphs every arc
// (including loops) under *Arcs.
func ToNET(g *graph6.Graph) string {
	var b strings.Builder
	n := g.Order()

	fmt.Fprintf(&b, "*Vertices %d", n)
	for v := range n {
		fmt.Fprintf(&b, "\n%d \"%d\"", v+1, v)
	}

	if g.Directed() {
		b.WriteString("\n*Arcs")
	} else {
		b.WriteString("\n*Edges")
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "\n%d %d", e.From+1, e.To+1)
	}
	return b.String()
}
