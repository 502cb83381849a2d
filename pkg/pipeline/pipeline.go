// Package pipeline streams line-oriented graph files through decode and
// render.
//
// Every non-empty line of the input is one graph. The [Runner] numbers
// those lines from 1, applies skip and count, decodes each line with
// [graph6.Decode], renders it with [render.Render], and hands the result
// to an [EmitFunc] in input order. Both the CLI and the HTTP server use
// it so that numbering, caching, and error reporting behave the same way
// from every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	stats, err := runner.Run(ctx, os.Stdin, func(rec pipeline.Record) error {
//	    if rec.Err != nil {
//	        return nil // already logged
//	    }
//	    _, err := fmt.Println(string(rec.Output))
//	    return err
//	}, pipeline.Options{OutputFormat: render.FormatDOT})
//
// # Failures
//
// A line that fails to decode is reported as a [Record] with a non-nil
// Err (a [*LineError]) and logged at warn level. The run continues unless
// [Options.Strict] is set, in which case Run returns the [*LineError].
package pipeline

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/render"
	"github.com/matzehuels/g6conv/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultInputFormat detects each line's format from its first byte.
	DefaultInputFormat = graph6.FormatAuto

	// DefaultOutputFormat prints the 0/1 adjacency matrix.
	DefaultOutputFormat = render.FormatAdjMat

	// DefaultWorkers decodes sequentially.
	DefaultWorkers = 1

	// DefaultBatchSize is the number of lines decoded per parallel batch.
	DefaultBatchSize = 256

	// DefaultMaxLineBytes bounds a single input line. A graph6 line of
	// this length encodes roughly 22,000 vertices.
	DefaultMaxLineBytes = 64 << 20

	// MaxWorkers caps the worker count accepted from flags and config.
	MaxWorkers = 256
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a conversion run.
type Options struct {
	InputFormat  graph6.Format       `json:"from,omitempty"`
	OutputFormat render.OutputFormat `json:"to,omitempty"`

	// Skip drops the first Skip non-empty lines. Skipped lines still
	// advance the line index.
	Skip int `json:"skip,omitempty"`

	// Count stops the run after Count lines were attempted, failures
	// included. Zero means no limit.
	Count int `json:"count,omitempty"`

	// Workers > 1 decodes batches of BatchSize lines concurrently.
	Workers   int `json:"workers,omitempty"`
	BatchSize int `json:"-"`

	// Strict makes the first failed line abort the run.
	Strict bool `json:"strict,omitempty"`

	// Layout selects the Graphviz engine for svg and png output.
	Layout string `json:"layout,omitempty"`

	MaxLineBytes int `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputFormat == "" {
		o.InputFormat = DefaultInputFormat
	}
	if o.OutputFormat == "" {
		o.OutputFormat = DefaultOutputFormat
	}
	in, err := graph6.ParseFormat(string(o.InputFormat))
	if err != nil {
		return err
	}
	out, err := render.ParseOutputFormat(string(o.OutputFormat))
	if err != nil {
		return err
	}
	o.InputFormat, o.OutputFormat = in, out
	if o.Skip < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "skip must not be negative, got %d", o.Skip)
	}
	if o.Count < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "count must not be negative, got %d", o.Count)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	if !nodelink.KnownLayout(o.Layout) {
		return errs.New(errs.ErrCodeInvalidInput, "unknown layout %q, want one of %s", o.Layout, strings.Join(nodelink.Layouts(), ", "))
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.MaxLineBytes <= 0 {
		o.MaxLineBytes = DefaultMaxLineBytes
	}
	o.validated = true
	return nil
}

// renderOptions returns the render options for the line with index idx.
func (o *Options) renderOptions(idx int) render.Options {
	return render.Options{ID: idx, Layout: o.Layout}
}

// =============================================================================
// Results
// =============================================================================

// Record is the outcome of converting one line.
type Record struct {
	// Index is the 1-based position of the line among non-empty lines.
	Index int

	// Line is the trimmed input.
	Line string

	// Output is the rendered graph without a trailing newline.
	Output []byte

	// Err is a *LineError when the line failed.
	Err error

	// Cached reports whether Output came from the cache.
	Cached bool
}

// EmitFunc receives records in input order. A non-nil return aborts the run.
type EmitFunc func(Record) error

// Stats summarizes a run.
type Stats struct {
	Lines     int // non-empty lines read, skipped ones included
	Skipped   int
	Converted int
	Failed    int
	CacheHits int
	Duration  time.Duration
}

// LineError attaches the line index to a conversion failure.
type LineError struct {
	Index int
	Line  string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Index, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
