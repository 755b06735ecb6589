package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nihei9/lextab/generator"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 1)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Print a size report in readable format",
		Example: `  lextab describe report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	r, err := readReport(args[0])
	if err != nil {
		return err
	}

	writeReport(os.Stdout, r, term.IsTerminal(int(os.Stdout.Fd())))

	return nil
}

func readReport(path string) (*generator.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	return generator.ReadReport(f)
}

func writeReport(w io.Writer, r *generator.Report, styled bool) {
	title := fmt.Sprintf("%v (%v) / backend: %v", r.Automaton, r.Mode, r.Backend)
	total := fmt.Sprintf("footprint: %v bytes", r.Footprint)
	if styled {
		title = titleStyle.Render(title)
		total = totalStyle.Render(total)
	}

	tableRows := make([][]string, len(r.Tables))
	for i, row := range r.Tables {
		fp := strconv.Itoa(row.Footprint)
		if row.Deferred {
			fp = "-"
		}
		tableRows[i] = []string{
			row.Kind.String(),
			row.Name,
			strconv.Itoa(row.Count),
			strconv.Itoa(row.Width),
			fp,
		}
	}
	tables := newTable(styled, func(row int) bool {
		return !r.Tables[row].Backed
	}).
		Headers("kind", "name", "count", "width", "footprint").
		Rows(tableRows...)

	dirRows := make([][]string, len(r.Directory))
	for i, e := range r.Directory {
		dirRows[i] = []string{e.Tag, e.Slot, strconv.Itoa(e.Width)}
	}
	dir := newTable(styled, nil).
		Headers("tag", "slot", "width").
		Rows(dirRows...)

	fmt.Fprintf(w, "%v\n\n# Tables\n\n%v\n\n# Directory\n\n%v\n\n%v\n", title, tables.Render(), dir.Render(), total)
}

// newTable returns an empty table. dimmed reports whether a data row should be rendered as a
// placeholder.
func newTable(styled bool, dimmed func(row int) bool) *table.Table {
	t := table.New()
	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})
	}
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if dimmed != nil && dimmed(row) {
				return placeholderStyle
			}
			return cellStyle
		})
}
