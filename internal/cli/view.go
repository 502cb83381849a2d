package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/pipeline"
	"github.com/matzehuels/g6conv/pkg/render"
)

// viewModes are the text renderings the browser cycles through.
var viewModes = []render.OutputFormat{
	render.FormatAdjMat,
	render.FormatDOT,
	render.FormatNET,
	render.FormatFlat,
	render.FormatNauty,
}

var (
	viewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	viewModeActive   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewModeInactive = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) viewCommand() *cobra.Command {
	var (
		from        string
		skip, count int
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse the graphs of a file interactively",
		Long: `View loads every graph of a file (or stdin) and shows one at a time.

Keys: n/→ next, p/← previous, m cycle between adjmat, dot, net, flat and
nauty, g/G first/last, q quit. Lines that fail to decode show their error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			opts := c.Config.PipelineOptions()
			if cmd.Flags().Changed("from") {
				opts.InputFormat = graph6.Format(from)
			}
			opts.Skip, opts.Count = skip, count
			return c.runView(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "input format: auto (default), graph, digraph, flat, flatd")
	cmd.Flags().IntVarP(&skip, "skip", "s", 0, "skip the first graphs")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "load at most this many graphs (0 = all)")
	_ = cmd.RegisterFlagCompletionFunc("from", completeNames(inputFormatNames()))

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options) error {
	in, err := c.openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()

	entries, err := loadViewEntries(ctx, in, opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printWarning("no graphs in %s", displayName(input, "stdin"))
		return nil
	}

	p := tea.NewProgram(newViewModel(entries), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// viewEntry is one numbered input line and its decoded graph or error.
type viewEntry struct {
	index int
	line  string
	graph *graph6.Graph
	err   error
}

// loadViewEntries runs the pipeline with nauty output so that numbering,
// skip and count match `convert`, then decodes the canonical re-encodings.
func loadViewEntries(ctx context.Context, in io.Reader, opts pipeline.Options) ([]viewEntry, error) {
	opts.OutputFormat = render.FormatNauty
	opts.Strict = false

	var entries []viewEntry
	// Failures are shown in the view, so the runner logs nothing.
	runner := pipeline.NewRunner(nil, nil, nil)
	_, err := runner.Run(ctx, in, func(rec pipeline.Record) error {
		e := viewEntry{index: rec.Index, line: rec.Line, err: rec.Err}
		if rec.Err == nil {
			e.graph, e.err = graph6.Decode(string(rec.Output), graph6.FormatAuto)
		}
		entries = append(entries, e)
		return nil
	}, opts)
	return entries, err
}

// viewModel is the bubbletea model of `g6conv view`.
type viewModel struct {
	entries []viewEntry
	cursor  int
	mode    int
	width   int
	height  int
}

func newViewModel(entries []viewEntry) viewModel {
	return viewModel{entries: entries}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", "right", "l", "j", "down":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "p", "left", "h", "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.entries) - 1
		case "m", "tab":
			m.mode = (m.mode + 1) % len(viewModes)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m viewModel) View() string {
	e := m.entries[m.cursor]
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Graph %d", e.index)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))
	b.WriteString("\n")
	b.WriteString(m.modeBar())
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("%s: %s", errs.GetCode(e.err), errs.UserMessage(e.err))))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(truncate(e.line, m.bodyWidth())))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %d vertices · %d edges",
			e.graph.Kind(), e.graph.Order(), e.graph.EdgeCount())))
		b.WriteString("\n")
		b.WriteString(viewBoxStyle.Render(m.body(e)))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("n/→ next  p/← prev  m mode  g/G first/last  q quit"))
	return b.String()
}

func (m viewModel) modeBar() string {
	parts := make([]string, len(viewModes))
	for i, f := range viewModes {
		if i == m.mode {
			parts[i] = viewModeActive.Render(string(f))
		} else {
			parts[i] = viewModeInactive.Render(string(f))
		}
	}
	return strings.Join(parts, "  ")
}

// body renders the current graph, clipped to the window.
func (m viewModel) body(e viewEntry) string {
	out, err := render.Render(context.Background(), e.graph, viewModes[m.mode], render.Options{ID: e.index})
	if err != nil {
		return StyleError.Render(err.Error())
	}
	lines := strings.Split(string(out), "\n")
	if limit := m.bodyHeight(); limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], StyleDim.Render(fmt.Sprintf("… %d more lines", len(lines)-limit+1)))
	}
	width := m.bodyWidth()
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	return strings.Join(lines, "\n")
}

// bodyHeight leaves room for the header, box border and help line.
func (m viewModel) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-9, 3)
}

func (m viewModel) bodyWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(m.width-4, 10)
}

// truncate clips s to width runes; width 0 means no limit.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
