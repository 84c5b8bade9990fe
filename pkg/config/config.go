package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/chartimage"
	"github.com/macropower/tripchart/pkg/tripdata"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the configuration file.
type Config struct {
	// Input is the path of the trip count CSV file.
	Input string `yaml:"input,omitempty" jsonschema:"description=Path of the trip count CSV file. May end in .gz or .zst."`
	// Columns names the header of each column role.
	Columns Columns `yaml:"columns,omitempty" jsonschema:"description=Header names of the input columns."`
	// Timestamp controls how bucket start times are parsed.
	Timestamp Timestamp `yaml:"timestamp,omitempty" jsonschema:"description=How bucket start times are parsed."`
	// Chart holds the chart decorations.
	Chart Chart `yaml:"chart,omitempty" jsonschema:"description=Chart decorations."`
	// Output configures headless rendering.
	Output Output `yaml:"output,omitempty" jsonschema:"description=Headless output files. When no paths are set the chart is shown in the terminal."`
}

// Columns names the input columns. Empty names select the built-in
// defaults, which also accept a few common aliases.
type Columns struct {
	Time  string `yaml:"time,omitempty"  jsonschema:"description=Header of the bucket start column. Defaults to half_hour_starttime."`
	Count string `yaml:"count,omitempty" jsonschema:"description=Header of the trip count column. Defaults to trip_count."`
}

type Timestamp struct {
	// Layouts are tried in order. Empty selects [tripdata.DefaultLayouts].
	Layouts []string `yaml:"layouts,omitempty" jsonschema:"description=Go time layouts tried in order."`
	// Location is an IANA zone name used for times without an offset.
	Location string `yaml:"location,omitempty" jsonschema:"description=IANA time zone for timestamps without an offset."`
}

type Chart struct {
	Title        string  `yaml:"title,omitempty"         jsonschema:"description=Chart title."`
	XLabel       string  `yaml:"x_label,omitempty"       jsonschema:"description=X axis label."`
	YLabel       string  `yaml:"y_label,omitempty"       jsonschema:"description=Y axis label."`
	TickRotation float64 `yaml:"tick_rotation,omitempty" jsonschema:"description=Counter-clockwise rotation of x tick labels in degrees.,minimum=-90,maximum=90"`
	BarColor     string  `yaml:"bar_color,omitempty"     jsonschema:"description=Bar fill color.,pattern=^#[0-9a-fA-F]{6}$"`
}

type Output struct {
	Paths  []string `yaml:"paths,omitempty"  jsonschema:"description=Files to write. The format is chosen by extension: .png .svg or .pdf."`
	Width  int      `yaml:"width,omitempty"  jsonschema:"description=Image width in pixels.,minimum=320"`
	Height int      `yaml:"height,omitempty" jsonschema:"description=Image height in pixels.,minimum=240"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timestamp: Timestamp{
			Location: "UTC",
		},
		Chart: Chart{
			Title:        barchart.DefaultTitle,
			XLabel:       barchart.DefaultXLabel,
			YLabel:       barchart.DefaultYLabel,
			TickRotation: barchart.DefaultTickRotation,
			BarColor:     barchart.DefaultBarColor,
		},
		Output: Output{
			Width:  chartimage.DefaultWidth,
			Height: chartimage.DefaultHeight,
		},
	}
}

// Load reads the config file at path over [Default] and validates the
// result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a config file from r over [Default] and validates the result.
// Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var merr error

	if c.Columns.Time != "" && c.Columns.Time == c.Columns.Count {
		merr = multierror.Append(merr, fmt.Errorf("columns: time and count both use %q", c.Columns.Time))
	}

	if _, err := c.Location(); err != nil {
		merr = multierror.Append(merr, err)
	}

	for i, l := range c.Timestamp.Layouts {
		if l == "" {
			merr = multierror.Append(merr, fmt.Errorf("timestamp.layouts[%d]: empty layout", i))
		}
	}

	if c.Chart.TickRotation < -90 || c.Chart.TickRotation > 90 {
		merr = multierror.Append(merr,
			fmt.Errorf("chart.tick_rotation: %v is outside [-90, 90]", c.Chart.TickRotation))
	}

	if c.Chart.BarColor != "" && !barchart.ValidColor(c.Chart.BarColor) {
		merr = multierror.Append(merr,
			fmt.Errorf("chart.bar_color: %q is not a #rrggbb color", c.Chart.BarColor))
	}

	if c.Output.Width < chartimage.MinWidth || c.Output.Height < chartimage.MinHeight {
		merr = multierror.Append(merr,
			fmt.Errorf("output: size %dx%d is smaller than %dx%d",
				c.Output.Width, c.Output.Height, chartimage.MinWidth, chartimage.MinHeight))
	}

	for i, p := range c.Output.Paths {
		if _, err := chartimage.FormatFromPath(p); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("output.paths[%d]: %w", i, err))
		}
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, merr)
	}

	return nil
}

// Location resolves [Timestamp.Location]. An empty name is UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timestamp.Location == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(c.Timestamp.Location)
	if err != nil {
		return nil, fmt.Errorf("timestamp.location: %w", err)
	}

	return loc, nil
}

// LoaderOpts returns the [tripdata.Loader] options described by c.
func (c *Config) LoaderOpts() ([]tripdata.LoaderOpts, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	return []tripdata.LoaderOpts{
		tripdata.WithTimeColumn(c.Columns.Time),
		tripdata.WithCountColumn(c.Columns.Count),
		tripdata.WithLayouts(c.Timestamp.Layouts...),
		tripdata.WithLocation(loc),
	}, nil
}

// ChartOpts returns the [barchart.Chart] options described by c.
func (c *Config) ChartOpts() []barchart.ChartOpts {
	return []barchart.ChartOpts{
		barchart.WithTitle(c.Chart.Title),
		barchart.WithXLabel(c.Chart.XLabel),
		barchart.WithYLabel(c.Chart.YLabel),
		barchart.WithTickRotation(c.Chart.TickRotation),
		barchart.WithBarColor(c.Chart.BarColor),
	}
}

// FileOpts returns the [chartimage.File] options described by c.
func (c *Config) FileOpts() []chartimage.FileOpts {
	return []chartimage.FileOpts{
		chartimage.WithSize(c.Output.Width, c.Output.Height),
	}
}
