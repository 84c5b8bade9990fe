package tripchart_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/chartimage"
	"github.com/macropower/tripchart/pkg/tripchart"
	"github.com/macropower/tripchart/pkg/tripdata"
)

type fakeSurface struct {
	err    error
	charts []*barchart.Chart
}

func (s *fakeSurface) Show(_ context.Context, c *barchart.Chart) error {
	s.charts = append(s.charts, c)

	return s.err
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func TestRendererRun(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		file   string
		starts []time.Time
		values []int
	}{
		"scenario": {
			file:   "scenario.csv",
			starts: []time.Time{at(0, 0), at(0, 30)},
			values: []int{3, 5},
		},
		"gzip": {
			file:   "scenario.csv.gz",
			starts: []time.Time{at(0, 0), at(0, 30)},
			values: []int{3, 5},
		},
		"stable for equal starts": {
			file:   "duplicates.csv",
			starts: []time.Time{at(0, 0), at(0, 0), at(0, 30), at(1, 0), at(1, 0)},
			values: []int{1, 9, 6, 4, 2},
		},
		"header only": {
			file:   "header_only.csv",
			starts: []time.Time{},
			values: []int{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := &fakeSurface{}
			r := tripchart.NewRenderer(s)

			err := r.Run(t.Context(), filepath.Join("testdata", tc.file))
			require.NoError(t, err)
			require.Len(t, s.charts, 1)

			c := s.charts[0]
			require.Len(t, c.Bars, len(tc.values))
			assert.Equal(t, tc.values, c.Values())

			for i, b := range c.Bars {
				assert.True(t, tc.starts[i].Equal(b.Start), "bar %d starts at %s", i, b.Start)
				assert.Equal(t, strconv.Itoa(tc.values[i]), b.Label)
			}

			assert.Equal(t, barchart.DefaultTitle, c.Title)
			assert.Equal(t, barchart.DefaultXLabel, c.XLabel)
			assert.Equal(t, barchart.DefaultYLabel, c.YLabel)
			assert.InDelta(t, barchart.DefaultTickRotation, c.TickRotation, 0)
		})
	}
}

func TestRendererRun_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want error
		file string
	}{
		"missing file": {
			file: "missing.csv",
			want: tripdata.ErrFileAccess,
		},
		"missing column": {
			file: "missing_column.csv",
			want: tripdata.ErrSchema,
		},
		"bad timestamp": {
			file: "bad_timestamp.csv",
			want: tripdata.ErrParse,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := &fakeSurface{}
			r := tripchart.NewRenderer(s)

			var done []tripchart.EventDone
			r.Subscribe(func(evt any) {
				if e, ok := evt.(tripchart.EventDone); ok {
					done = append(done, e)
				}
			})

			err := r.Run(t.Context(), filepath.Join("testdata", tc.file))
			require.ErrorIs(t, err, tc.want)
			assert.Empty(t, s.charts, "nothing is shown")

			require.Len(t, done, 1)
			assert.ErrorIs(t, done[0].Err, tc.want)
		})
	}
}

func TestRendererRun_BadTimestampRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata", "bad_timestamp.csv")

	r := tripchart.NewRenderer(&fakeSurface{})
	err := r.Run(t.Context(), path)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), path), "path named once: %v", err)

	var rerr *tripdata.RecordError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "not-a-date", rerr.Value)
	assert.Equal(t, 3, rerr.Line)
}

func TestRendererRun_Events(t *testing.T) {
	t.Parallel()

	r := tripchart.NewRenderer(&fakeSurface{})

	events := []any{}
	r.Subscribe(func(evt any) {
		events = append(events, evt)
	})

	path := filepath.Join("testdata", "scenario.csv")
	require.NoError(t, r.Run(t.Context(), path))

	assert.Equal(t, []any{
		tripchart.EventLoaded{Path: path, Records: 2},
		tripchart.EventSorted{Records: 2, Total: 8},
		tripchart.EventDone{},
	}, events)
}

func TestRendererRun_Options(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "trips.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Start,Trips\n01/01/2024 00:30,5\n01/01/2024 00:00,3\n"), 0o600))

	s := &fakeSurface{}
	r := tripchart.NewRenderer(s,
		tripchart.WithLoaderOpts(
			tripdata.WithTimeColumn("start"),
			tripdata.WithCountColumn("trips"),
		),
		tripchart.WithChartOpts(barchart.WithTitle("Custom")),
	)

	require.NoError(t, r.Run(t.Context(), path))
	require.Len(t, s.charts, 1)
	assert.Equal(t, "Custom", s.charts[0].Title)
	assert.Equal(t, []int{3, 5}, s.charts[0].Values())
}

func TestRendererRun_SurfaceError(t *testing.T) {
	t.Parallel()

	errShow := errors.New("display went away")
	r := tripchart.NewRenderer(&fakeSurface{err: errShow})

	err := r.Run(t.Context(), filepath.Join("testdata", "scenario.csv"))
	require.ErrorIs(t, err, errShow)
}

func TestRendererRun_NoSurface(t *testing.T) {
	t.Parallel()

	err := tripchart.NewRenderer(nil).Run(t.Context(), filepath.Join("testdata", "scenario.csv"))
	require.ErrorIs(t, err, tripchart.ErrNoSurface)
}

func TestRendererRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	s := &fakeSurface{}
	err := tripchart.NewRenderer(s).Run(ctx, filepath.Join("testdata", "scenario.csv"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.charts)
}

func TestRendererRun_File(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "chart.svg")

	f, err := chartimage.NewFile([]string{out})
	require.NoError(t, err)

	require.NoError(t, tripchart.NewRenderer(f).Run(t.Context(), filepath.Join("testdata", "scenario.csv")))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	svg := string(b)
	assert.Contains(t, svg, barchart.DefaultTitle)
	assert.Less(t, strings.Index(svg, ">3<"), strings.Index(svg, ">5<"))
}

func TestLoadSorted(t *testing.T) {
	t.Parallel()

	tbl, err := tripchart.LoadSorted(filepath.Join("testdata", "scenario.csv"))
	require.NoError(t, err)
	require.True(t, tbl.IsSorted())

	assert.Equal(t, []tripdata.Pair{
		{Start: at(0, 0), Count: 3},
		{Start: at(0, 30), Count: 5},
	}, tbl.Pairs())

	_, err = tripchart.LoadSorted(filepath.Join("testdata", "missing.csv"))
	require.ErrorIs(t, err, tripdata.ErrFileAccess)
}
