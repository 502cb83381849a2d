package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/render"
)

func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List input and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.stdout, StyleTitle.Render("Input formats")+StyleDim.Render("  (-f, --from)"))
			fmt.Fprintln(c.stdout, formatsTable(inputFormatRows()))
			fmt.Fprintln(c.stdout)
			fmt.Fprintln(c.stdout, StyleTitle.Render("Output formats")+StyleDim.Render("  (-F, --to)"))
			fmt.Fprintln(c.stdout, formatsTable(outputFormatRows()))
			return nil
		},
	}
}

func inputFormatRows() [][]string {
	rows := make([][]string, 0, len(graph6.Formats))
	for _, f := range graph6.Formats {
		rows = append(rows, []string{string(f), f.Description()})
	}
	return rows
}

func outputFormatRows() [][]string {
	rows := make([][]string, 0, len(render.OutputFormats))
	for _, f := range render.OutputFormats {
		rows = append(rows, []string{string(f), f.Description()})
	}
	return rows
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

func formatsTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return headerStyle
			case col == 0:
				return cell.Foreground(colorCyan)
			default:
				return cell
			}
		}).
		Render()
}

func inputFormatNames() []string {
	names := make([]string, len(graph6.Formats))
	for i, f := range graph6.Formats {
		names[i] = string(f)
	}
	return names
}

func outputFormatNames() []string {
	names := make([]string, len(render.OutputFormats))
	for i, f := range render.OutputFormats {
		names[i] = string(f)
	}
	return names
}

// completeNames returns a cobra completion func offering names.
func completeNames(names []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
