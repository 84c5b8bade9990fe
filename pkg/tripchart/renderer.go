package tripchart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/tripdata"
)

var ErrNoSurface = errors.New("no surface")

// Surface presents a finished chart. Show may block, for example until an
// interactive viewer is dismissed.
type Surface interface {
	Show(ctx context.Context, c *barchart.Chart) error
}

// Renderer draws trip count files on a [Surface].
// Create instances with [NewRenderer].
type Renderer struct {
	surface    Surface
	subs       []func(any)
	loaderOpts []tripdata.LoaderOpts
	chartOpts  []barchart.ChartOpts
}

type RendererOpts func(*Renderer)

// WithLoaderOpts sets the options used to read input files.
func WithLoaderOpts(opts ...tripdata.LoaderOpts) RendererOpts {
	return func(r *Renderer) {
		r.loaderOpts = append(r.loaderOpts, opts...)
	}
}

// WithChartOpts sets the decorations of the built chart.
func WithChartOpts(opts ...barchart.ChartOpts) RendererOpts {
	return func(r *Renderer) {
		r.chartOpts = append(r.chartOpts, opts...)
	}
}

func NewRenderer(s Surface, opts ...RendererOpts) *Renderer {
	r := &Renderer{
		surface: s,
		subs:    []func(any){},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) broadcastEvent(evt any) {
	for _, sub := range r.subs {
		sub(evt)
	}
}

// Subscribe registers f to receive the events sent during [Renderer.Run].
func (r *Renderer) Subscribe(f func(any)) {
	r.subs = append(r.subs, f)
}

// Run loads inputPath, sorts its records by bucket start, and shows one bar
// per record on the surface. Nothing is shown if any record is invalid.
func (r *Renderer) Run(ctx context.Context, inputPath string) error {
	err := r.run(ctx, inputPath)
	r.broadcastEvent(EventDone{Err: err})

	return err
}

func (r *Renderer) run(ctx context.Context, inputPath string) error {
	if r.surface == nil {
		return ErrNoSurface
	}

	logger := slog.With(
		slog.String("cmd", "render"),
		slog.String("input", inputPath),
	)

	logger.Debug("loading trip counts")

	tbl, err := tripdata.Load(inputPath, r.loaderOpts...)
	if err != nil {
		return fmt.Errorf("load %q: %w", inputPath, err)
	}

	r.broadcastEvent(EventLoaded{Path: inputPath, Records: tbl.Len()})

	tbl.Sort()
	r.broadcastEvent(EventSorted{Records: tbl.Len(), Total: tbl.Total()})

	logger.Info("loaded trip counts",
		slog.Int("records", tbl.Len()),
		slog.Int("trips", tbl.Total()),
	)

	c := barchart.FromTable(tbl, r.chartOpts...)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render %q: %w", inputPath, err)
	}

	if err := r.surface.Show(ctx, c); err != nil {
		return fmt.Errorf("show chart: %w", err)
	}

	logger.Debug("chart shown")

	return nil
}

// LoadSorted reads the table at path and sorts it by bucket start.
func LoadSorted(path string, opts ...tripdata.LoaderOpts) (*tripdata.Table, error) {
	tbl, err := tripdata.Load(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	tbl.Sort()

	return tbl, nil
}
