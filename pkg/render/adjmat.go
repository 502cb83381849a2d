package render

import (
	"strings"

	"github.com/matzehuels/g6conv/pkg/graph6"
)

// AdjacencyMatrix writes one row per line as '0'/'1' characters. Rows are
// joined by newlines with nothing after the last row; an empty graph
// renders as the empty string.
func AdjacencyMatrix(g *graph6.Graph) string {
	n := g.Order()
	var b strings.Builder
	b.Grow(n * (n + 1))
	for i := range n {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := range n {
			if g.HasEdge(i, j) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}
