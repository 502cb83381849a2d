package render

import (
	"context"
	"strings"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/render/nodelink"
)

// OutputFormat names an output representation.
type OutputFormat string

// Output formats.
const (
	FormatAdjMat OutputFormat = "adjmat"
	FormatDOT    OutputFormat = "dot"
	FormatNET    OutputFormat = "net"
	FormatFlat   OutputFormat = "flat"
	FormatNauty  OutputFormat = "nauty"
	FormatSVG    OutputFormat = "svg"
	FormatPNG    OutputFormat = "png"
)

// OutputFormats lists every output format in display order.
var OutputFormats = []OutputFormat{
	FormatAdjMat,
	FormatDOT,
	FormatNET,
	FormatFlat,
	FormatNauty,
	FormatSVG,
	FormatPNG,
}

var outputDescriptions = map[OutputFormat]string{
	FormatAdjMat: "adjacency matrix, one row per line",
	FormatDOT:    "Graphviz DOT text",
	FormatNET:    "Pajek NET",
	FormatFlat:   "matrix as a single 0/1 line",
	FormatNauty:  "graph6 or digraph6 re-encoding",
	FormatSVG:    "Graphviz drawing, one SVG file per graph",
	FormatPNG:    "Graphviz drawing, one PNG file per graph",
}

// Description returns a one-line summary of f.
func (f OutputFormat) Description() string { return outputDescriptions[f] }

// String implements fmt.Stringer.
func (f OutputFormat) String() string { return string(f) }

// Binary reports whether f produces a standalone file rather than a text
// record in the output stream.
func (f OutputFormat) Binary() bool {
	return f == FormatSVG || f == FormatPNG
}

// ParseOutputFormat resolves an output format name, case-insensitively.
// "graph6", "digraph6" and "g6" are accepted for nauty; "pajek" for net;
// "adj" for adjmat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "graph6", "digraph6", "g6", "d6":
		return FormatNauty, nil
	case "pajek":
		return FormatNET, nil
	case "adj":
		return FormatAdjMat, nil
	}
	for _, f := range OutputFormats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown output format %q", s)
}

// Options configures rendering.
type Options struct {
	// ID is the external label used by DOT and the drawings. Zero omits it.
	ID int

	// Layout is the Graphviz engine for svg/png.
	Layout string
}

// Render encodes g in format f.
func Render(ctx context.Context, g *graph6.Graph, f OutputFormat, opts Options) ([]byte, error) {
	switch f {
	case FormatAdjMat:
		return []byte(AdjacencyMatrix(g)), nil
	case FormatDOT:
		return []byte(ToDOT(g, opts.ID)), nil
	case FormatNET:
		return []byte(ToNET(g)), nil
	case FormatFlat:
		return []byte(graph6.EncodeFlat(g)), nil
	case FormatNauty:
		return []byte(graph6.Encode(g)), nil
	case FormatSVG, FormatPNG:
		nopts := nodelink.Options{ID: opts.ID, Layout: opts.Layout}
		dot := nodelink.ToDOT(g, nopts)
		if f == FormatPNG {
			return nodelink.RenderPNG(ctx, dot, nopts)
		}
		return nodelink.RenderSVG(ctx, dot, nopts)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown output format %q", string(f))
	}
}
