package graph6

import (
	errs "github.com/matzehuels/g6conv/pkg/errors"
)

// Kind distinguishes undirected graphs from directed ones.
type Kind uint8

const (
	// Undirected graphs have a symmetric matrix and no self-loops.
	Undirected Kind = iota
	// Directed graphs may use every cell, including the diagonal.
	Directed
)

// String returns "undirected" or "directed".
func (k Kind) String() string {
	switch k {
	case Undirected:
		return "undirected"
	case Directed:
		return "directed"
	default:
		return "unknown"
	}
}

// Edge is an ordered vertex pair. For undirected graphs From < To.
type Edge struct {
	From int
	To   int
}

// Graph is an immutable adjacency-matrix graph on vertices 0..Order()-1.
//
// Graphs are only built by the decoders and by [FromMatrix]/[FromEdges],
// all of which reject matrices that would break the undirected invariant
// (symmetric, false diagonal). Encoders therefore never fail.
type Graph struct {
	kind  Kind
	order int
	adj   []bool // row-major, order*order cells
}

func newGraph(kind Kind, order int) *Graph {
	return &Graph{kind: kind, order: order, adj: make([]bool, order*order)}
}

// set marks the edge i→j, mirroring it for undirected graphs.
func (g *Graph) set(i, j int) {
	g.adj[i*g.order+j] = true
	if g.kind == Undirected {
		g.adj[j*g.order+i] = true
	}
}

// FromMatrix builds a graph from a square boolean matrix.
//
// For Undirected the matrix must be symmetric with a false diagonal;
// violations return an ErrCodeInvalidMatrix error. A ragged matrix returns
// ErrCodeNotASquare. The input is copied.
func FromMatrix(kind Kind, rows [][]bool) (*Graph, error) {
	n := len(rows)
	for i, row := range rows {
		if len(row) != n {
			return nil, errs.New(errs.ErrCodeNotASquare, "row %d has %d cells, want %d", i, len(row), n)
		}
	}
	g := newGraph(kind, n)
	for i, row := range rows {
		copy(g.adj[i*n:(i+1)*n], row)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromEdges builds a graph of the given order from an edge list.
// Undirected edges are mirrored automatically; undirected self-loops and
// endpoints outside [0,order) are rejected with ErrCodeInvalidMatrix.
func FromEdges(kind Kind, order int, edges []Edge) (*Graph, error) {
	if order < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "negative order %d", order)
	}
	g := newGraph(kind, order)
	for _, e := range edges {
		if e.From < 0 || e.From >= order || e.To < 0 || e.To >= order {
			return nil, errs.New(errs.ErrCodeInvalidMatrix, "edge %d-%d outside order %d", e.From, e.To, order)
		}
		if kind == Undirected && e.From == e.To {
			return nil, errs.New(errs.ErrCodeInvalidMatrix, "self-loop at vertex %d in undirected graph", e.From)
		}
		g.set(e.From, e.To)
	}
	return g, nil
}

// validate enforces the undirected invariant.
func (g *Graph) validate() error {
	if g.kind == Directed {
		return nil
	}
	n := g.order
	for i := 0; i < n; i++ {
		if g.adj[i*n+i] {
			return errs.New(errs.ErrCodeInvalidMatrix, "self-loop at vertex %d in undirected graph", i)
		}
		for j := i + 1; j < n; j++ {
			if g.adj[i*n+j] != g.adj[j*n+i] {
				return errs.New(errs.ErrCodeInvalidMatrix, "asymmetric cells (%d,%d) and (%d,%d)", i, j, j, i)
			}
		}
	}
	return nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.order }

// Kind returns whether the graph is directed.
func (g *Graph) Kind() Kind { return g.kind }

// Directed reports whether g is a directed graph.
func (g *Graph) Directed() bool { return g.kind == Directed }

// HasEdge reports whether cell (i,j) of the adjacency matrix is set.
// Out-of-range indices report false.
func (g *Graph) HasEdge(i, j int) bool {
	if i < 0 || j < 0 || i >= g.order || j >= g.order {
		return false
	}
	return g.adj[i*g.order+j]
}

// Matrix returns a copy of the adjacency matrix.
func (g *Graph) Matrix() [][]bool {
	rows := make([][]bool, g.order)
	for i := range rows {
		rows[i] = make([]bool, g.order)
		copy(rows[i], g.adj[i*g.order:(i+1)*g.order])
	}
	return rows
}

// Edges lists set cells row by row: the strict upper triangle for
// undirected graphs, every cell (including loops) for directed graphs.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	n := g.order
	for i := 0; i < n; i++ {
		start := 0
		if g.kind == Undirected {
			start = i + 1
		}
		for j := start; j < n; j++ {
			if g.adj[i*n+j] {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}
	return edges
}

// EdgeCount returns len(g.Edges()) without allocating.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, set := range g.adj {
		if set {
			count++
		}
	}
	if g.kind == Undirected {
		count /= 2
	}
	return count
}

// Equal reports whether g and other have the same kind, order, and matrix.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.kind != other.kind || g.order != other.order {
		return false
	}
	for i := range g.adj {
		if g.adj[i] != other.adj[i] {
			return false
		}
	}
	return true
}
