package chartimage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/chartimage"
)

var (
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
	pdfMagic = []byte("%PDF-")
)

func scenarioChart() *barchart.Chart {
	c := barchart.New()
	c.Add(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 3)
	c.Add(time.Date(2024, time.January, 1, 0, 30, 0, 0, time.UTC), 5)

	return c
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want chartimage.Format
		err  error
	}{
		"png":       {path: "out/chart.png", want: chartimage.FormatPNG},
		"svg":       {path: "chart.SVG", want: chartimage.FormatSVG},
		"pdf":       {path: "/tmp/chart.pdf", want: chartimage.FormatPDF},
		"jpeg":      {path: "chart.jpg", err: chartimage.ErrUnsupportedFormat},
		"extension": {path: "chart", err: chartimage.ErrUnsupportedFormat},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := chartimage.FormatFromPath(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		chart  *barchart.Chart
		format chartimage.Format
		check  func(t *testing.T, out []byte)
	}{
		"png": {
			chart:  scenarioChart(),
			format: chartimage.FormatPNG,
			check: func(t *testing.T, out []byte) {
				t.Helper()
				assert.True(t, bytes.HasPrefix(out, pngMagic))
			},
		},
		"png empty": {
			chart:  barchart.New(),
			format: chartimage.FormatPNG,
			check: func(t *testing.T, out []byte) {
				t.Helper()
				assert.True(t, bytes.HasPrefix(out, pngMagic))
			},
		},
		"svg": {
			chart:  scenarioChart(),
			format: chartimage.FormatSVG,
			check: func(t *testing.T, out []byte) {
				t.Helper()
				s := string(out)
				assert.Contains(t, s, "<svg")
				assert.Contains(t, s, "Bike Trips Count by Half Hour Start Times")
				assert.Contains(t, s, "Half Hour Start Time")
				assert.Contains(t, s, "Trip Count")
				assert.Contains(t, s, "2024-01-01 00:30:00")
				assert.Contains(t, s, ">3<")
				assert.Contains(t, s, ">5<")
			},
		},
		"pdf": {
			chart:  scenarioChart(),
			format: chartimage.FormatPDF,
			check: func(t *testing.T, out []byte) {
				t.Helper()
				assert.True(t, bytes.HasPrefix(out, pdfMagic))
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			err := chartimage.Write(&buf, tc.format, tc.chart, 800, 600)
			require.NoError(t, err)
			tc.check(t, buf.Bytes())
		})
	}
}

func TestWrite_Unsupported(t *testing.T) {
	t.Parallel()

	err := chartimage.Write(&bytes.Buffer{}, chartimage.Format("gif"), scenarioChart(), 10, 10)
	require.ErrorIs(t, err, chartimage.ErrUnsupportedFormat)
}

func TestFileShow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "chart.png"),
		filepath.Join(dir, "chart.svg"),
		filepath.Join(dir, "chart.pdf"),
	}

	f, err := chartimage.NewFile(paths, chartimage.WithSize(640, 480))
	require.NoError(t, err)
	assert.Equal(t, 640, f.Width)
	assert.Equal(t, 480, f.Height)

	require.NoError(t, f.Show(t.Context(), scenarioChart()))

	for _, p := range paths {
		fi, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, fi.Size(), p)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(paths), "temporary files are cleaned up")
}

func TestFileShow_Cancelled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chart.png")

	f, err := chartimage.NewFile([]string{path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err = f.Show(ctx, scenarioChart())
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestNewFile_Invalid(t *testing.T) {
	t.Parallel()

	_, err := chartimage.NewFile(nil)
	require.Error(t, err)

	_, err = chartimage.NewFile([]string{"chart.png", "chart.bmp"})
	require.ErrorIs(t, err, chartimage.ErrUnsupportedFormat)
}

func TestFileShow_MissingDir(t *testing.T) {
	t.Parallel()

	f, err := chartimage.NewFile([]string{filepath.Join(t.TempDir(), "missing", "chart.png")})
	require.NoError(t, err)

	err = f.Show(t.Context(), scenarioChart())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
