package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/g6conv/pkg/cache"
	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/observability"
	"github.com/matzehuels/g6conv/pkg/render"
)

// cacheKeyType labels conversion entries in cache hooks.
const cacheKeyType = "conversion"

// Runner converts lines with caching.
// Both CLI and server use this to avoid duplicating numbering and caching logic.
//
// The Runner holds no per-run state, so multiple goroutines can safely
// use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to cached conversions. Zero means no expiry.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert decodes line and renders it in opts.OutputFormat. idx labels
// the graph in DOT, svg and png output. The boolean reports a cache hit.
func (r *Runner) Convert(ctx context.Context, line string, idx int, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	line = strings.TrimSpace(line)

	key := r.cacheKey(line, idx, opts)
	if key != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	g, err := graph6.Decode(line, opts.InputFormat)
	if err != nil {
		return nil, false, err
	}
	out, err := render.Render(ctx, g, opts.OutputFormat, opts.renderOptions(idx))
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, out, r.TTL); err != nil {
			r.Logger.Debug("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(out))
		}
	}
	return out, false, nil
}

// cacheKey returns "" when caching is disabled. Formats that embed the
// line index or a layout engine carry them in the key.
func (r *Runner) cacheKey(line string, idx int, opts Options) string {
	if _, off := r.Cache.(*cache.NullCache); off {
		return ""
	}
	to := string(opts.OutputFormat)
	switch opts.OutputFormat {
	case render.FormatDOT:
		to = fmt.Sprintf("%s#%d", to, idx)
	case render.FormatSVG, render.FormatPNG:
		to = fmt.Sprintf("%s#%d@%s", to, idx, opts.Layout)
	}
	return r.Keyer.ConversionKey(string(opts.InputFormat), to, line)
}

// task is one numbered input line awaiting conversion. err is set when
// the line failed before decoding, e.g. because it was too long.
type task struct {
	index int
	line  string
	err   error
}

// Run reads in line by line, converts every selected line, and calls emit
// with the results in input order. Failed lines are emitted with Err set
// and counted in Stats; with opts.Strict the first failure ends the run
// and is returned as a *LineError.
func (r *Runner) Run(ctx context.Context, in io.Reader, emit EmitFunc, opts Options) (stats Stats, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Stats{}, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, string(opts.InputFormat), string(opts.OutputFormat))
	defer func() {
		stats.Duration = time.Since(start)
		hooks.OnRunComplete(ctx, stats.Converted, stats.Failed, stats.Duration, err)
	}()

	// Sequential runs emit each line as soon as it is converted so that
	// piped input streams through.
	batchSize := opts.BatchSize
	if opts.Workers == 1 {
		batchSize = 1
	}

	lines := newLineReader(in, opts.MaxLineBytes)

	batch := make([]task, 0, batchSize)
	attempted := 0
	for {
		raw, oversized, readErr := lines.next()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return stats, errs.Wrap(errs.ErrCodeInvalidInput, readErr, "read input after line %d", stats.Lines)
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if opts.Count > 0 && attempted >= opts.Count {
			break
		}
		stats.Lines++
		if stats.Lines <= opts.Skip {
			stats.Skipped++
			continue
		}
		attempted++

		t := task{index: stats.Lines, line: line}
		if oversized {
			t.err = errs.New(errs.ErrCodeInvalidInput, "line longer than %d bytes", opts.MaxLineBytes)
		}
		batch = append(batch, t)
		if len(batch) == batchSize {
			if err := r.flush(ctx, batch, emit, opts, &stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := r.flush(ctx, batch, emit, opts, &stats); err != nil {
			return stats, err
		}
	}

	r.Logger.Debug("run complete",
		"lines", stats.Lines,
		"converted", stats.Converted,
		"failed", stats.Failed,
		"cache_hits", stats.CacheHits)
	return stats, nil
}

// flush converts a batch and emits its records in order.
func (r *Runner) flush(ctx context.Context, batch []task, emit EmitFunc, opts Options, stats *Stats) error {
	for _, rec := range r.convertBatch(ctx, batch, opts) {
		if rec.Err != nil {
			stats.Failed++
			r.Logger.Warn("skipping line",
				"line", rec.Index,
				"code", errs.GetCode(rec.Err),
				"error", errs.UserMessage(rec.Err))
		} else {
			stats.Converted++
			if rec.Cached {
				stats.CacheHits++
			}
		}
		if err := emit(rec); err != nil {
			return err
		}
		if rec.Err != nil && opts.Strict {
			return rec.Err
		}
	}
	return nil
}

// convertBatch converts tasks with at most opts.Workers goroutines.
// Results keep the order of batch.
func (r *Runner) convertBatch(ctx context.Context, batch []task, opts Options) []Record {
	results := make([]Record, len(batch))
	if opts.Workers == 1 || len(batch) == 1 {
		for i, t := range batch {
			results[i] = r.convertTask(ctx, t, opts)
		}
		return results
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)
	for i, t := range batch {
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release
			results[i] = r.convertTask(ctx, t, opts)
		}(i, t)
	}
	wg.Wait()
	return results
}

func (r *Runner) convertTask(ctx context.Context, t task, opts Options) Record {
	start := time.Now()
	var (
		out    []byte
		cached bool
		err    = t.err
	)
	if err == nil {
		out, cached, err = r.Convert(ctx, t.line, t.index, opts)
	}
	observability.Pipeline().OnLineComplete(ctx, t.index, string(opts.OutputFormat), time.Since(start), err)

	rec := Record{Index: t.index, Line: t.line, Output: out, Cached: cached}
	if err != nil {
		rec.Err = &LineError{Index: t.index, Line: t.line, Err: err}
	}
	return rec
}
