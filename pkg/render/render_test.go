package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
)

func mustDecode(t *testing.T, line string) *graph6.Graph {
	t.Helper()
	g, err := graph6.Decode(line, graph6.FormatAuto)
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", line, err)
	}
	return g
}

func TestAdjacencyMatrix(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Cr", "0110\n1001\n1001\n0110"},
		{"&BP_", "010\n001\n100"},
		{"@", "0"},
		{"?", ""},
	}

	for _, tt := range tests {
		if got := AdjacencyMatrix(mustDecode(t, tt.line)); got != tt.want {
			t.Errorf("AdjacencyMatrix(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name string
		line string
		id   int
		want string
	}{
		{
			name: "undirected",
			line: "Cr",
			want: "graph {\n  0 -- 1;\n  0 -- 2;\n  1 -- 3;\n  2 -- 3;\n}",
		},
		{
			name: "undirected with id",
			line: "A_",
			id:   12,
			want: "graph graph_12 {\n  0 -- 1;\n}",
		},
		{
			name: "directed",
			line: "&BP_",
			id:   1,
			want: "digraph graph_1 {\n  0 -> 1;\n  1 -> 2;\n  2 -> 0;\n}",
		},
		{
			name: "directed loop skipped",
			line: "&A_",
			want: "digraph {\n}",
		},
		{
			name: "no edges",
			line: "B?",
			want: "graph {\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDOT(mustDecode(t, tt.line), tt.id); got != tt.want {
				t.Errorf("ToDOT() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToDOTParsesWithGraphviz(t *testing.T) {
	for _, line := range []string{"H@BQPS^", "&DI?AO?", "?"} {
		dot := ToDOT(mustDecode(t, line), 5)
		g, err := graphviz.ParseBytes([]byte(dot))
		if err != nil {
			t.Errorf("ParseBytes(ToDOT(%q)) error: %v", line, err)
			continue
		}
		g.Close()
	}
}

func TestToNET(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Bw", "*Vertices 3\n1 \"0\"\n2 \"1\"\n3 \"2\"\n*Edges\n1 2\n1 3\n2 3"},
		{"&A_", "*Vertices 2\n1 \"0\"\n2 \"1\"\n*Arcs\n1 1"},
		{"?", "*Vertices 0\n*Edges"},
	}

	for _, tt := range tests {
		if got := ToNET(mustDecode(t, tt.line)); got != tt.want {
			t.Errorf("ToNET(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	g := mustDecode(t, "0110100110010110")

	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatAdjMat, "0110\n1001\n1001\n0110"},
		{FormatFlat, "0110100110010110"},
		{FormatNauty, "Cr"},
		{FormatDOT, "graph graph_2 {\n  0 -- 1;\n  0 -- 2;\n  1 -- 3;\n  2 -- 3;\n}"},
		{FormatNET, "*Vertices 4\n1 \"0\"\n2 \"1\"\n3 \"2\"\n4 \"3\"\n*Edges\n1 2\n1 3\n2 4\n3 4"},
	}

	for _, tt := range tests {
		got, err := Render(ctx, g, tt.format, Options{ID: 2})
		if err != nil {
			t.Fatalf("Render(%s) error: %v", tt.format, err)
		}
		if string(got) != tt.want {
			t.Errorf("Render(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := Render(context.Background(), mustDecode(t, "Bw"), FormatSVG, Options{ID: 1})
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Error("Render(svg) output is not SVG")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), mustDecode(t, "Cr"), OutputFormat("gexf"), Options{})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Render(gexf) error = %v, want %s", err, errs.ErrCodeInvalidFormat)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"adjmat", FormatAdjMat},
		{"adj", FormatAdjMat},
		{"DOT", FormatDOT},
		{"net", FormatNET},
		{"pajek", FormatNET},
		{"flat", FormatFlat},
		{"nauty", FormatNauty},
		{"graph6", FormatNauty},
		{"svg", FormatSVG},
		{"png", FormatPNG},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseOutputFormat("gexf"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ParseOutputFormat(gexf) error = %v", err)
	}
}

func TestOutputFormatMetadata(t *testing.T) {
	for _, f := range OutputFormats {
		if f.Description() == "" {
			t.Errorf("%s has no description", f)
		}
		if f.Binary() != (f == FormatSVG || f == FormatPNG) {
			t.Errorf("%s Binary() = %v", f, f.Binary())
		}
	}
}
