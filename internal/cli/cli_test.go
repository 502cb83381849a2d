package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/render"
)

// runCLI executes the root command with the given stdin and arguments and
// returns what was written to stdout and to the log.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prev := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = prev })

	var logs syncBuffer
	var out bytes.Buffer
	c := New(&logs, LogInfo)
	c.stdin = strings.NewReader(stdin)
	c.stdout = &out

	root := c.RootCommand()
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestConvertStdinToStdout(t *testing.T) {
	out, _, err := runCLI(t, "Cr\n\n  Bw\n", "convert", "-F", "flat")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	want := "0110100110010110\n011101110\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestConvertDefaultsToAdjacencyMatrix(t *testing.T) {
	out, _, err := runCLI(t, "Bw\n", "convert")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if want := "011\n101\n110\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestConvertSkipCountDOT(t *testing.T) {
	out, _, err := runCLI(t, "Bw\nBw\nBw\n", "convert", "-F", "dot", "-s", "1", "-c", "1")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	want := "graph graph_2 {\n  0 -- 1;\n  0 -- 2;\n  1 -- 2;\n}\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestConvertDigraphToNET(t *testing.T) {
	out, _, err := runCLI(t, "&BP_\n", "convert", "--to", "pajek")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	want := "*Vertices 3\n1 \"0\"\n2 \"1\"\n3 \"2\"\n*Arcs\n1 2\n2 3\n3 1\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestConvertLogsFailuresAndContinues(t *testing.T) {
	out, logs, err := runCLI(t, "!!\nBw\n", "convert", "-F", "nauty")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if out != "Bw\n" {
		t.Errorf("stdout = %q, want %q", out, "Bw\n")
	}
	if !strings.Contains(logs, string(errs.ErrCodeInvalidSizeByte)) {
		t.Errorf("logs = %q, want %s", logs, errs.ErrCodeInvalidSizeByte)
	}
}

func TestConvertReusesRepeatedLines(t *testing.T) {
	out, logs, err := runCLI(t, "Bw\nCr\nBw\nBw\n", "convert", "-F", "flat", "-w", "1")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if want := "011101110\n0110100110010110\n011101110\n011101110\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
	if !strings.Contains(logs, "cache_hits=2") {
		t.Errorf("logs = %q, want cache_hits=2", logs)
	}
}

func TestConvertStrict(t *testing.T) {
	_, _, err := runCLI(t, "Bw\n;Bg\nCr\n", "convert", "--strict")
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("convert --strict error = %v, want code %s", err, errs.ErrCodeUnsupported)
	}
}

func TestConvertParallel(t *testing.T) {
	input := strings.Repeat("Bw\nCr\n", 100)
	seq, _, err := runCLI(t, input, "convert", "-F", "flat")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	par, _, err := runCLI(t, input, "convert", "-F", "flat", "-w", "4")
	if err != nil {
		t.Fatalf("convert -w 4 error = %v", err)
	}
	if par != seq {
		t.Error("parallel output differs from sequential output")
	}
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.g6")
	outPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte("Cr\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "", "convert", in, "-o", outPath, "-F", "nauty"); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Cr\n" {
		t.Errorf("output file = %q, want %q", data, "Cr\n")
	}
}

func TestConvertArgumentAndInputFlag(t *testing.T) {
	_, _, err := runCLI(t, "", "convert", "a.g6", "-i", "b.g6")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidInput)
	}
}

func TestConvertMissingInput(t *testing.T) {
	_, _, err := runCLI(t, "", "convert", filepath.Join(t.TempDir(), "missing.g6"))
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidInput)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "Bw\n", "convert", "-F", "gexf")
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidFormat)
	}
}

func TestConvertSVGNeedsOutput(t *testing.T) {
	_, _, err := runCLI(t, "Bw\n", "convert", "-F", "svg")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidInput)
	}
}

func TestConvertSVGWritesOneFilePerGraph(t *testing.T) {
	base := filepath.Join(t.TempDir(), "drawings", "g")
	if _, _, err := runCLI(t, "Bw\n!!\nCr\n", "convert", "-F", "svg", "-o", base); err != nil {
		t.Fatalf("convert error = %v", err)
	}

	for _, name := range []string{"g_1.svg", "g_3.svg"} {
		data, err := os.ReadFile(filepath.Join(filepath.Dir(base), name))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("%s does not contain an svg element", name)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(base), "g_2.svg")); err == nil {
		t.Error("g_2.svg written for a line that failed")
	}
}

func TestConvertUsesConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "g6conv.toml")
	if err := os.WriteFile(cfg, []byte("output_format = \"flat\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "Bw\n", "--config", cfg, "convert")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if out != "011101110\n" {
		t.Errorf("stdout = %q, want config output format", out)
	}

	// Flags win over the config file.
	out, _, err = runCLI(t, "Bw\n", "--config", cfg, "convert", "-F", "nauty")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if out != "Bw\n" {
		t.Errorf("stdout = %q, want flag output format", out)
	}
}

func TestConvertEnvOverridesConfig(t *testing.T) {
	t.Setenv("G6CONV_OUTPUT_FORMAT", "nauty")
	out, _, err := runCLI(t, "Cr\n", "convert")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if out != "Cr\n" {
		t.Errorf("stdout = %q, want %q", out, "Cr\n")
	}
}

func TestConvertUnknownLayoutFailsBeforeWriting(t *testing.T) {
	base := filepath.Join(t.TempDir(), "g")
	_, _, err := runCLI(t, "Bw\nCr\n", "convert", "-F", "svg", "-o", base, "--layout", "spiral")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidInput)
	}
	if _, err := os.Stat(base + "_1.svg"); err == nil {
		t.Error("g_1.svg written despite an unknown layout")
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		output string
		idx    int
		format render.OutputFormat
		want   string
	}{
		{"out/g", 1, render.FormatSVG, "out/g_1.svg"},
		{"out/g.svg", 12, render.FormatSVG, "out/g_12.svg"},
		{"out/g.png", 3, render.FormatSVG, "out/g.png_3.svg"},
		{"graph", 7, render.FormatPNG, "graph_7.png"},
	}

	for _, tt := range tests {
		if got := artifactPath(tt.output, tt.idx, tt.format); got != tt.want {
			t.Errorf("artifactPath(%q, %d, %s) = %q, want %q", tt.output, tt.idx, tt.format, got, tt.want)
		}
	}
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "formats")
	if err != nil {
		t.Fatalf("formats error = %v", err)
	}
	for _, name := range []string{"auto", "digraph", "incsparse6", "flatd", "adjmat", "nauty", "png"} {
		if !strings.Contains(out, name) {
			t.Errorf("formats output missing %q", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the binary name")
	}
}

func TestInvalidConfigFails(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(cfg, []byte("workers = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, "Bw\n", "--config", cfg, "convert")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("convert error = %v, want code %s", err, errs.ErrCodeInvalidInput)
	}
}
