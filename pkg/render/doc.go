// Package render turns decoded graphs into output text.
//
// # Output Formats
//
//   - adjmat: one row per line of '0'/'1' cells, no header
//   - dot: Graphviz DOT, `graph {`/`digraph {` with one statement per edge
//   - net: Pajek NET with *Vertices and *Edges (or *Arcs) sections
//   - flat: the whole matrix on one line, see [graph6.EncodeFlat]
//   - nauty: graph6 or digraph6 re-encoding, see [graph6.Encode]
//   - svg, png: node-link drawings rendered with Graphviz (see [nodelink])
//
// Text outputs carry no trailing newline; callers that write one graph per
// record add it.
//
// # Usage
//
//	out, err := render.Render(ctx, g, render.FormatDOT, render.Options{ID: 3})
//
// Encoding a valid graph never fails for the text formats. [Render]
// returns an error only for an unknown format or a Graphviz failure.
//
// [graph6.EncodeFlat]: github.com/matzehuels/g6conv/pkg/graph6
// [graph6.Encode]: github.com/matzehuels/g6conv/pkg/graph6
// [nodelink]: github.com/matzehuels/g6conv/pkg/render/nodelink
package render
