package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/macropower/tripchart/pkg/tripchart"
	"github.com/macropower/tripchart/pkg/tripdata"
)

const tableTimeLayout = "2006-01-02 15:04"

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableCountStyle  = tableCellStyle.Align(lipgloss.Right)
)

// NewTableCmd returns the table command.
func NewTableCmd() *cobra.Command {
	args := NewInputArgs()

	cmd := &cobra.Command{
		Use:          "table [input]",
		Short:        "Print the trip counts in chronological order",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, posArgs []string) error {
			c, err := args.Config(cc, posArgs)
			if err != nil {
				return err
			}

			if err := c.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			loaderOpts, err := c.LoaderOpts()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			tbl, err := tripchart.LoadSorted(c.Input, loaderOpts...)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)

			cc.Println(renderTable(tbl, p))
			cc.Println(p.Sprintf("%d buckets, %d trips", tbl.Len(), tbl.Total()))

			return nil
		},
	}

	args.AddFlags(cmd)

	return cmd
}

func renderTable(tbl *tripdata.Table, p *message.Printer) string {
	rows := make([][]string, 0, tbl.Len())
	for _, r := range tbl.Records {
		rows = append(rows, []string{
			r.HalfHourStart.Format(tableTimeLayout),
			p.Sprintf("%d", r.TripCount),
			strconv.Itoa(r.Line),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tbl.TimeColumn, tbl.CountColumn, "line").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableCellStyle
			}

			return tableCountStyle
		})

	return t.String()
}
