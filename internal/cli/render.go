package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tripchart/pkg/chartimage"
	"github.com/macropower/tripchart/pkg/charttui"
	"github.com/macropower/tripchart/pkg/config"
	"github.com/macropower/tripchart/pkg/log"
	"github.com/macropower/tripchart/pkg/tripchart"
)

const (
	renderDesc = `Render a bar chart of half-hour bike trip counts.

The input is a CSV file with a header row and one row per half-hour bucket.
Rows are sorted by bucket start time before drawing; the file order does not
matter. Inputs ending in .gz or .zst are decompressed.

Without --output the chart is shown in the terminal, which requires an
interactive terminal. With --output it is written to one or more files.
`
	renderExample = `  # Show a chart in the terminal
  tripchart render trips.csv

  # Write a PNG and a PDF
  tripchart render trips.csv -o chart.png -o chart.pdf

  # Read the input path from the environment
  TRIPCHART_INPUT=trips.csv.gz tripchart render -o chart.svg
`
)

type RenderArgs struct {
	*InputArgs

	outputs *[]string
	title   *string
	width   *int
	height  *int
	quiet   *bool
}

func NewRenderArgs() *RenderArgs {
	return &RenderArgs{
		InputArgs: NewInputArgs(),
		outputs:   new([]string),
		title:     new(string),
		width:     new(int),
		height:    new(int),
		quiet:     new(bool),
	}
}

func (a *RenderArgs) GetOutputs() []string {
	return *a.outputs
}

func (a *RenderArgs) GetTitle() string {
	return *a.title
}

func (a *RenderArgs) GetWidth() int {
	return *a.width
}

func (a *RenderArgs) GetHeight() int {
	return *a.height
}

func (a *RenderArgs) GetQuiet() bool {
	return *a.quiet
}

// NewRenderCmd returns the render command.
func NewRenderCmd(rootArgs *RootArgs) *cobra.Command {
	args := NewRenderArgs()

	cmd := &cobra.Command{
		Use:          "render [input]",
		Short:        "Render a trip count chart",
		Long:         renderDesc,
		Example:      renderExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, posArgs []string) error {
			c, err := args.Config(cc, posArgs)
			if err != nil {
				return err
			}

			flags := cc.Flags()
			if flags.Changed("output") {
				c.Output.Paths = args.GetOutputs()
			}

			if flags.Changed("title") {
				c.Chart.Title = args.GetTitle()
			}

			if flags.Changed("width") {
				c.Output.Width = args.GetWidth()
			}

			if flags.Changed("height") {
				c.Output.Height = args.GetHeight()
			}

			if err := c.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			surface, err := newSurface(cc, c, rootArgs, args.GetQuiet())
			if err != nil {
				return err
			}

			loaderOpts, err := c.LoaderOpts()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			r := tripchart.NewRenderer(surface,
				tripchart.WithLoaderOpts(loaderOpts...),
				tripchart.WithChartOpts(c.ChartOpts()...),
			)

			if len(c.Output.Paths) > 0 && !args.GetQuiet() {
				r.Subscribe(func(evt any) {
					if e, ok := evt.(tripchart.EventSorted); ok {
						cc.Printf("rendering %d buckets (%d trips)\n", e.Records, e.Total)
					}
				})
			}

			if err := r.Run(cc.Context(), c.Input); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			if !args.GetQuiet() {
				for _, p := range c.Output.Paths {
					cc.Printf("wrote %s\n", p)
				}
			}

			return nil
		},
	}

	args.AddFlags(cmd)
	cmd.Flags().StringArrayVarP(args.outputs, "output", "o", nil,
		"Write the chart to this file instead of the terminal (.png, .svg or .pdf; repeatable)")
	cmd.Flags().StringVar(args.title, "title", "", "Chart title")
	cmd.Flags().IntVar(args.width, "width", chartimage.DefaultWidth, "Output width in pixels")
	cmd.Flags().IntVar(args.height, "height", chartimage.DefaultHeight, "Output height in pixels")
	cmd.Flags().BoolVarP(args.quiet, "quiet", "q", false, "Run in quiet mode")

	must(cmd.MarkFlagFilename("output", "png", "svg", "pdf"))

	return cmd
}

// newSurface returns a file surface when output paths are configured, and the
// terminal viewer otherwise.
func newSurface(cc *cobra.Command, c *config.Config, rootArgs *RootArgs, quiet bool) (tripchart.Surface, error) {
	if len(c.Output.Paths) > 0 {
		f, err := chartimage.NewFile(c.Output.Paths, c.FileOpts()...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		return f, nil
	}

	out := cc.OutOrStdout()
	if quiet || !isTerminal(out) {
		return nil, fmt.Errorf("%w: stdout is not an interactive terminal, use --output to write a file", ErrNoDisplay)
	}

	lvl, err := log.GetLevel(rootArgs.GetLogLevel())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	format, err := log.GetFormat(rootArgs.GetLogFormat())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	slog.Debug("using terminal surface")

	return charttui.NewTerminal(out, lvl, format, tea.WithAltScreen()), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
