package graph6

import "strings"

// Encode re-encodes g in its native nauty format: graph6 for undirected
// graphs, digraph6 ('&' prefix) for directed ones. The bit traversal is the
// one the decoders read, so Decode(Encode(g)) reproduces g.
func Encode(g *Graph) string {
	switch g.kind {
	case Directed:
		return EncodeDigraph6(g)
	default:
		return EncodeGraph6(g)
	}
}

// EncodeGraph6 packs the strict upper triangle of g column by column.
// For a directed graph only the upper triangle is read, so callers should
// use [Encode] unless they want that projection.
func EncodeGraph6(g *Graph) string {
	n := g.order
	p := packer{buf: appendSize(make([]byte, 0, 8+(n*(n-1)/2+5)/6), n)}
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			p.push(g.adj[i*n+j])
		}
	}
	return string(p.flush())
}

// EncodeDigraph6 packs the full matrix of g row by row behind '&'.
func EncodeDigraph6(g *Graph) string {
	n := g.order
	buf := make([]byte, 0, 9+(n*n+5)/6)
	buf = append(buf, digraphPrefix)
	p := packer{buf: appendSize(buf, n)}
	for _, bit := range g.adj {
		p.push(bit)
	}
	return string(p.flush())
}

// EncodeFlat writes the matrix row by row as '0'/'1' characters with no
// separators and no size prefix. It is the inverse of [DecodeFlat].
func EncodeFlat(g *Graph) string {
	var b strings.Builder
	b.Grow(len(g.adj))
	for _, bit := range g.adj {
		if bit {
			b.WriteByte(flatOne)
		} else {
			b.WriteByte(flatZero)
		}
	}
	return b.String()
}
