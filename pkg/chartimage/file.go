package chartimage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/macropower/tripchart/pkg/barchart"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 800

	// MinWidth and MinHeight are the smallest sizes that leave room for the
	// plot next to the title, labels and ticks.
	MinWidth  = 320
	MinHeight = 240
)

var errNoPaths = errors.New("no output paths")

// File is a headless surface that writes charts to one or more files.
// Create instances with [NewFile].
type File struct {
	Paths  []string
	Width  int
	Height int
}

type FileOpts func(*File)

// WithSize sets the output size in pixels. Non-positive values keep the
// defaults.
func WithSize(width, height int) FileOpts {
	return func(f *File) {
		if width > 0 {
			f.Width = width
		}

		if height > 0 {
			f.Height = height
		}
	}
}

// NewFile creates a [File] surface writing to every path in paths. The format
// of each file is chosen by its extension.
func NewFile(paths []string, opts ...FileOpts) (*File, error) {
	if len(paths) == 0 {
		return nil, errNoPaths
	}

	for _, p := range paths {
		if _, err := FormatFromPath(p); err != nil {
			return nil, err
		}
	}

	f := &File{
		Paths:  paths,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Show writes c to every configured path concurrently. The first failure
// cancels the remaining writes.
func (f *File) Show(ctx context.Context, c *barchart.Chart) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, path := range f.Paths {
		g.Go(func() error {
			return f.writeFile(gCtx, path, c)
		})
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck // Wrapped by writeFile.
	}

	return nil
}

// writeFile renders into a temporary file next to path and renames it into
// place, so readers never observe a partial chart.
func (f *File) writeFile(ctx context.Context, path string, c *barchart.Chart) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	logger := slog.With(
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	logger.Debug("rendering chart", slog.Int("bars", len(c.Bars)))

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tripchart-*")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", path, err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Best effort; gone after rename.

	bw := bufio.NewWriter(tmp)

	err = Write(bw, format, c, f.Width, f.Height)
	if err == nil {
		err = bw.Flush()
	}

	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // Charts are meant to be shared.
		return fmt.Errorf("chmod %q: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %q: %w", path, err)
	}

	logger.Info("wrote chart")

	return nil
}
