package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/g6conv/pkg/graph6"
)

// Options configures node-link diagram rendering.
type Options struct {
	// ID labels the diagram when positive; it is the input line index in
	// the CLI.
	ID int

	// Layout selects the Graphviz engine. Empty means circo for undirected
	// graphs and dot for directed ones.
	Layout string
}

var layouts = map[string]graphviz.Layout{
	"dot":   graphviz.DOT,
	"neato": graphviz.NEATO,
	"circo": graphviz.CIRCO,
	"fdp":   graphviz.FDP,
	"sfdp":  graphviz.SFDP,
	"twopi": graphviz.TWOPI,
}

// Layouts returns the names accepted by Options.Layout, sorted.
func Layouts() []string {
	return slices.Sorted(maps.Keys(layouts))
}

// KnownLayout reports whether name is accepted by Options.Layout. The
// empty name selects the default layout and is known.
func KnownLayout(name string) bool {
	if name == "" {
		return true
	}
	_, ok := layouts[name]
	return ok
}

// ToDOT converts g to a styled Graphviz document. Every vertex is declared
// before the edges; undirected graphs list each edge once.
func ToDOT(g *graph6.Graph, opts Options) string {
	var buf bytes.Buffer

	keyword, op := "graph", "--"
	if g.Directed() {
		keyword, op = "digraph", "->"
	}
	name := "G"
	if opts.ID > 0 {
		name = fmt.Sprintf("graph_%d", opts.ID)
	}

	fmt.Fprintf(&buf, "%s %s {\n", keyword, name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.ID > 0 {
		fmt.Fprintf(&buf, "  label=\"#%d\";\n", opts.ID)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3, fixedsize=true];\n")
	buf.WriteString("\n")

	for v := range g.Order() {
		fmt.Fprintf(&buf, "  %d;\n", v)
	}

	if len(g.Edges()) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d %s %d;\n", e.From, op, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func layoutFor(dot string, opts Options) (graphviz.Layout, error) {
	name := opts.Layout
	if name == "" {
		name = "circo"
		if strings.HasPrefix(dot, "digraph") {
			name = "dot"
		}
	}
	l, ok := layouts[name]
	if !ok {
		var none graphviz.Layout
		return none, fmt.Errorf("unknown layout: %s", name)
	}
	return l, nil
}

// RenderSVG renders a DOT document to SVG.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	out, err := render(ctx, dot, opts, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT document to PNG.
func RenderPNG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	return render(ctx, dot, opts, graphviz.PNG)
}

func render(ctx context.Context, dot string, opts Options, format graphviz.Format) ([]byte, error) {
	layout, err := layoutFor(dot, opts)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with one sized in
// pixels from the viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
