package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/g6conv/pkg/cache"
	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/pipeline"
	"github.com/matzehuels/g6conv/pkg/render"
	"github.com/matzehuels/g6conv/pkg/render/nodelink"
)

// convertFlags holds the raw flag values of `g6conv convert`. Values left
// unset on the command line fall back to the loaded config.
type convertFlags struct {
	input   string
	output  string
	from    string
	to      string
	count   int
	skip    int
	workers int
	strict  bool
	layout  string
}

func (c *CLI) convertCommand() *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert graph6/digraph6 lines to another format",
		Long: `Convert reads one graph per line from a file or stdin and writes each one in
the requested output format, followed by a newline.

Empty lines are ignored. Lines are numbered from 1 among non-empty lines;
--skip and --count work on that numbering, and DOT output uses it as the
graph label. A line that fails to decode is reported on stderr and skipped
unless --strict is set.

The svg and png formats write one file per graph, named <output>_<index>.<ext>.`,
		Example: `  # Adjacency matrices from a graph6 file
  g6conv convert -i graphs.g6

  # DOT for graphs 11..20 of a stream
  geng 8 | g6conv convert -F dot -s 10 -c 10

  # One drawing per graph: out/cube_1.svg, out/cube_2.svg, ...
  g6conv convert cubes.g6 -F svg -o out/cube`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("input") {
					return errs.New(errs.ErrCodeInvalidInput, "pass the input file either as an argument or with --input, not both")
				}
				f.input = args[0]
			}
			opts := c.convertOptions(cmd, f)
			return c.runConvert(cmd.Context(), f, opts)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file (default stdin; - for stdin)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout); base path for svg/png")
	cmd.Flags().StringVarP(&f.from, "from", "f", "", "input format: auto (default), graph, digraph, flat, flatd")
	cmd.Flags().StringVarP(&f.to, "to", "F", "", "output format: adjmat (default), dot, net, flat, nauty, svg, png")
	cmd.Flags().IntVarP(&f.count, "count", "c", 0, "stop after this many graphs (0 = all)")
	cmd.Flags().IntVarP(&f.skip, "skip", "s", 0, "skip the first graphs")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "decode in parallel with this many workers")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "stop at the first line that fails to decode")
	cmd.Flags().StringVar(&f.layout, "layout", "", "Graphviz layout for svg/png: circo, dot, neato, fdp, sfdp, twopi")

	_ = cmd.RegisterFlagCompletionFunc("from", completeNames(inputFormatNames()))
	_ = cmd.RegisterFlagCompletionFunc("to", completeNames(outputFormatNames()))
	_ = cmd.RegisterFlagCompletionFunc("layout", completeNames(nodelink.Layouts()))

	return cmd
}

// convertOptions merges changed flags over the loaded config.
func (c *CLI) convertOptions(cmd *cobra.Command, f convertFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("from") {
		opts.InputFormat = graph6.Format(f.from)
	}
	if flags.Changed("to") {
		opts.OutputFormat = render.OutputFormat(f.to)
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	if flags.Changed("strict") {
		opts.Strict = f.strict
	}
	if flags.Changed("layout") {
		opts.Layout = f.layout
	}
	opts.Skip = f.skip
	opts.Count = f.count
	return opts
}

func (c *CLI) runConvert(ctx context.Context, f convertFlags, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	binary := opts.OutputFormat.Binary()
	if binary && f.output == "" {
		return errs.New(errs.ErrCodeInvalidInput, "%s output writes one file per graph; set --output to a base path", opts.OutputFormat)
	}

	in, err := c.openInput(f.input)
	if err != nil {
		return err
	}
	defer in.Close()

	var (
		out io.WriteCloser
		bw  *bufio.Writer
	)
	if !binary {
		out, err = c.openOutput(f.output)
		if err != nil {
			return err
		}
		defer out.Close()
		bw = bufio.NewWriter(out)
	}

	var spinner *Spinner
	if f.output != "" && isTerminal(statusOut) {
		spinner = newSpinner(ctx, "Converted")
		spinner.Start()
		defer spinner.Stop()
	}

	logger.Debug("converting",
		"input", displayName(f.input, "stdin"),
		"from", opts.InputFormat,
		"to", opts.OutputFormat,
		"workers", opts.Workers)

	// Repeated lines in one stream convert once.
	store, err := cache.NewLRUCache(c.Config.Server.CacheSize)
	if err != nil {
		return err
	}
	defer store.Close()

	prog := newProgress(logger)
	var files []string
	runner := pipeline.NewRunner(store, nil, logger)
	stats, runErr := runner.Run(ctx, in, func(rec pipeline.Record) error {
		if rec.Err != nil {
			return nil
		}
		if spinner != nil {
			spinner.Inc()
		}
		if binary {
			path := artifactPath(f.output, rec.Index, opts.OutputFormat)
			if err := writeArtifact(path, rec.Output); err != nil {
				return err
			}
			files = append(files, path)
			return nil
		}
		if _, err := bw.Write(rec.Output); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	}, opts)

	if bw != nil {
		if err := bw.Flush(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if spinner != nil {
		spinner.Stop()
	}
	if runErr != nil {
		return runErr
	}

	prog.done(fmt.Sprintf("Converted %d graphs", stats.Converted),
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"cache_hits", stats.CacheHits)

	if f.output != "" {
		printSuccess("Wrote %s graphs", StyleHighlight.Render(fmt.Sprint(stats.Converted)))
		if binary {
			for _, p := range files {
				printFile(p)
			}
		} else {
			printFile(f.output)
		}
		printStats(stats)
	}
	if stats.Failed > 0 {
		printWarning("%d of %d lines failed to decode", stats.Failed, stats.Converted+stats.Failed)
	}
	return nil
}

// nopCloser wraps a writer whose lifetime the CLI does not own.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (c *CLI) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(c.stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open input")
	}
	return f, nil
}

func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{c.stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "create output")
	}
	return f, nil
}

// artifactPath names the file for graph idx: base_idx.ext, where base is
// output with a matching extension stripped.
func artifactPath(output string, idx int, f render.OutputFormat) string {
	ext := "." + string(f)
	base := output
	if strings.EqualFold(filepath.Ext(output), ext) {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return fmt.Sprintf("%s_%d%s", base, idx, ext)
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func displayName(path, fallback string) string {
	if path == "" || path == "-" {
		return fallback
	}
	return path
}
