package graph6

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/g6conv/pkg/errors"
)

// Format names an input encoding.
type Format string

// Input formats. FormatAuto picks one of the others from the first byte.
const (
	FormatAuto         Format = "auto"
	FormatGraph        Format = "graph"
	FormatDigraph      Format = "digraph"
	FormatSparse6      Format = "sparse6"
	FormatIncSparse6   Format = "incsparse6"
	FormatFlat         Format = "flat"
	FormatFlatDirected Format = "flatd"
)

// Formats lists every input format in display order.
var Formats = []Format{
	FormatAuto,
	FormatGraph,
	FormatDigraph,
	FormatSparse6,
	FormatIncSparse6,
	FormatFlat,
	FormatFlatDirected,
}

var formatAliases = map[string]Format{
	"graph6":   FormatGraph,
	"g6":       FormatGraph,
	"digraph6": FormatDigraph,
	"d6":       FormatDigraph,
	"s6":       FormatSparse6,
}

var formatDescriptions = map[Format]string{
	FormatAuto:         "detect from the first character",
	FormatGraph:        "graph6, undirected",
	FormatDigraph:      "digraph6, directed ('&' prefix)",
	FormatSparse6:      "sparse6 (':' prefix, not supported)",
	FormatIncSparse6:   "incremental sparse6 (';' prefix, not supported)",
	FormatFlat:         "n*n characters of 0/1, undirected",
	FormatFlatDirected: "n*n characters of 0/1, directed",
}

// Description returns a one-line summary of f.
func (f Format) Description() string {
	return formatDescriptions[f]
}

// ParseFormat resolves a format name, case-insensitively. Common aliases
// such as "graph6" and "d6" are accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown input format %q", s)
}

// Detect maps the first byte of a trimmed line to a concrete format:
// '&' digraph6, ':' sparse6, ';' incremental sparse6, '0' or '1' flat,
// anything else graph6. An empty line detects as graph6.
func Detect(line string) Format {
	if len(line) == 0 {
		return FormatGraph
	}
	switch line[0] {
	case digraphPrefix:
		return FormatDigraph
	case sparse6Prefix:
		return FormatSparse6
	case incSparse6Prefix:
		return FormatIncSparse6
	case flatZero, flatOne:
		return FormatFlat
	default:
		return FormatGraph
	}
}

// Decode trims line and decodes it with format f. FormatAuto routes
// through [Detect]; an explicit format calls its decoder directly, which
// fails with ErrCodeFormatMismatch when the line's prefix contradicts it.
// The sparse6 family always fails with ErrCodeUnsupported.
func Decode(line string, f Format) (*Graph, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty line")
	}
	if f == FormatAuto {
		f = Detect(line)
	}

	switch f {
	case FormatGraph:
		return DecodeGraph6(line)
	case FormatDigraph:
		return DecodeDigraph6(line)
	case FormatFlat, FormatFlatDirected:
		if c := line[0]; c != flatZero && c != flatOne {
			return nil, errs.New(errs.ErrCodeFormatMismatch, "flat line cannot start with %q", c)
		}
		kind := Undirected
		if f == FormatFlatDirected {
			kind = Directed
		}
		return DecodeFlat(line, kind)
	case FormatSparse6, FormatIncSparse6:
		return nil, errs.New(errs.ErrCodeUnsupported, "%s input is not supported", f)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown input format %q", string(f))
	}
}

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }

var _ fmt.Stringer = Format("")
