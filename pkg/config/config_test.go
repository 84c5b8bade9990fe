package config_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/chartimage"
	"github.com/macropower/tripchart/pkg/config"
	"github.com/macropower/tripchart/pkg/tripdata"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := config.Default()
	require.NoError(t, c.Validate())

	assert.Empty(t, c.Input)
	assert.Empty(t, c.Output.Paths)
	assert.Equal(t, chartimage.DefaultWidth, c.Output.Width)
	assert.Equal(t, chartimage.DefaultHeight, c.Output.Height)

	chart := barchart.New(c.ChartOpts()...)
	assert.Equal(t, barchart.New(), chart)

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := config.Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)

	want := &config.Config{
		Input: "trips.csv",
		Columns: config.Columns{
			Time:  "start",
			Count: "trips",
		},
		Timestamp: config.Timestamp{
			Layouts:  []string{"2006-01-02 15:04:05"},
			Location: "Europe/Oslo",
		},
		Chart: config.Chart{
			Title:        "Oslo Bysykkel",
			XLabel:       "Start",
			YLabel:       "Trips",
			TickRotation: 30,
			BarColor:     "#ff8800",
		},
		Output: config.Output{
			Paths:  []string{"chart.png", "chart.pdf"},
			Width:  640,
			Height: 480,
		},
	}
	assert.Equal(t, want, c)

	chart := barchart.New(c.ChartOpts()...)
	assert.Equal(t, "Oslo Bysykkel", chart.Title)
	assert.Equal(t, "#ff8800", chart.BarColor)
	assert.InDelta(t, 30, chart.TickRotation, 0)
}

func TestLoad_Partial(t *testing.T) {
	t.Parallel()

	c, err := config.Load(filepath.Join("testdata", "partial.yaml"))
	require.NoError(t, err)

	want := config.Default()
	want.Chart.Title = "Weekend trips"
	assert.Equal(t, want, c)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRead_Empty(t *testing.T) {
	t.Parallel()

	c, err := config.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		file     string
		contains []string
		count    int
	}{
		"every problem reported": {
			file: "invalid.yaml",
			contains: []string{
				"columns: time and count both use \"trips\"",
				"timestamp.location",
				"chart.tick_rotation",
				"chart.bar_color",
				"output: size",
				"output.paths[0]",
			},
			count: 6,
		},
		"unknown key": {
			file:     "unknown_key.yaml",
			contains: []string{"colour"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(filepath.Join("testdata", tc.file))
			require.ErrorIs(t, err, config.ErrInvalidConfig)

			for _, s := range tc.contains {
				assert.ErrorContains(t, err, s)
			}

			if tc.count > 0 {
				var merr *multierror.Error
				require.ErrorAs(t, err, &merr)
				assert.Len(t, merr.Errors, tc.count)
				assert.ErrorIs(t, err, chartimage.ErrUnsupportedFormat)
			}
		})
	}
}

func TestLoaderOpts(t *testing.T) {
	t.Parallel()

	c := config.Default()
	c.Columns = config.Columns{Time: "Start", Count: "Trips"}
	c.Timestamp.Location = "America/New_York"

	opts, err := c.LoaderOpts()
	require.NoError(t, err)

	in := "Start,Trips\n2024-01-01 00:30:00,5\n2024-01-01 00:00:00,3\n"
	tbl, err := tripdata.Read(strings.NewReader(in), opts...)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	want := time.Date(2024, time.January, 1, 0, 30, 0, 0, ny)
	assert.True(t, want.Equal(tbl.Records[0].HalfHourStart), tbl.Records[0].HalfHourStart)

	c.Timestamp.Location = "Nowhere/Special"
	_, err = c.LoaderOpts()
	require.Error(t, err)
}

func TestWriteSchema(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, config.WriteSchema(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	props, ok := got["properties"].(map[string]any)
	require.True(t, ok)

	for _, k := range []string{"input", "columns", "timestamp", "chart", "output"} {
		assert.Contains(t, props, k)
	}

	chart, ok := props["chart"].(map[string]any)
	require.True(t, ok)

	chartProps, ok := chart["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, chartProps, "x_label")

	title, ok := chartProps["title"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, barchart.DefaultTitle, title["default"])

	assert.NotContains(t, got, "required")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		edit    func(c *config.Config)
		wantErr string
	}{
		"minimum size": {
			edit: func(c *config.Config) {
				c.Output.Width, c.Output.Height = chartimage.MinWidth, chartimage.MinHeight
			},
		},
		"too narrow": {
			edit:    func(c *config.Config) { c.Output.Width = 40 },
			wantErr: "output: size 40x800 is smaller than 320x240",
		},
		"too short": {
			edit:    func(c *config.Config) { c.Output.Height = 40 },
			wantErr: "output: size 1200x40 is smaller than 320x240",
		},
		"clockwise ticks": {
			edit: func(c *config.Config) { c.Chart.TickRotation = -45 },
		},
		"ticks past vertical": {
			edit:    func(c *config.Config) { c.Chart.TickRotation = -91 },
			wantErr: "chart.tick_rotation",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := config.Default()
			tc.edit(c)

			err := c.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
