// Package pkg holds the public libraries behind g6conv.
//
// # Layout
//
//   - [graph6] decodes and encodes graph6, digraph6 and flat adjacency
//     lines into an in-memory [graph6.Graph].
//   - [render] turns a graph into adjmat, DOT, Pajek NET, flat or nauty
//     text, and into Graphviz drawings through [render/nodelink].
//   - [pipeline] reads a line-oriented input, applies skip, count and
//     strict semantics, and converts lines in parallel while keeping
//     their order.
//   - [cache] stores converted lines in memory, in Redis, or in both.
//   - [errors] carries the error codes every layer reports.
//   - [observability] exposes hooks for pipeline, cache and HTTP events.
//   - [buildinfo] reports the version stamped at build time.
//
// # Quick Start
//
//	g, err := graph6.Decode("Bw", graph6.FormatAuto)
//	if err != nil {
//	    return err
//	}
//	out, err := render.Render(ctx, g, render.FormatDOT, render.Options{ID: 1})
//
// Converting a whole stream:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	stats, err := runner.Run(ctx, os.Stdin, func(rec pipeline.Record) error {
//	    if rec.Err != nil {
//	        return nil
//	    }
//	    _, err := fmt.Fprintf(os.Stdout, "%s\n", rec.Output)
//	    return err
//	}, pipeline.Options{OutputFormat: render.FormatFlat})
package pkg
