// Package nodelink draws decoded graphs as node-link diagrams with Graphviz.
//
// # Overview
//
// Where [render.ToDOT] emits the plain DOT text form of a graph, this
// package produces a styled DOT document meant for drawing: every vertex is
// declared (so isolated vertices are visible), vertices are small circles,
// and an undirected graph is laid out with circo by default.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.Options{})
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - ID: when positive, names the graph graph_<ID> and adds it as a label
//   - Layout: Graphviz engine name (dot, neato, circo, fdp, sfdp, twopi)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process through WebAssembly, so no system Graphviz install is needed.
//
// [render.ToDOT]: github.com/matzehuels/g6conv/pkg/render
package nodelink
