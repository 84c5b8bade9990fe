package tripdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	// DefaultTimeColumn is the bucket-start header used by the trip exports.
	DefaultTimeColumn = "half_hour_starttime"
	// DefaultCountColumn is the trip count header used by the trip exports.
	DefaultCountColumn = "trip_count"

	// MaxCount is the largest accepted trip count.
	MaxCount = math.MaxInt32
)

// utf8BOM is stripped from the first header field.
const utf8BOM = "\ufeff"

var (
	errNegativeCount   = errors.New("count must not be negative")
	errFractionalCount = errors.New("count must be a whole number")
	errCountRange      = fmt.Errorf("count must not exceed %d", MaxCount)
)

// Loader reads trip count tables. Create instances with [NewLoader].
type Loader struct {
	parser       *TimeParser
	loc          *time.Location
	timeColumns  []string
	countColumns []string
	layouts      []string
}

type LoaderOpts func(*Loader)

// WithTimeColumn sets the header name of the bucket-start column.
func WithTimeColumn(name string) LoaderOpts {
	return func(l *Loader) {
		if name != "" {
			l.timeColumns = []string{name}
		}
	}
}

// WithCountColumn sets the header name of the trip count column.
func WithCountColumn(name string) LoaderOpts {
	return func(l *Loader) {
		if name != "" {
			l.countColumns = []string{name}
		}
	}
}

// WithLayouts sets the timestamp layouts to try.
func WithLayouts(layouts ...string) LoaderOpts {
	return func(l *Loader) {
		l.layouts = layouts
	}
}

// WithLocation sets the location used for timestamps without an offset.
func WithLocation(loc *time.Location) LoaderOpts {
	return func(l *Loader) {
		l.loc = loc
	}
}

func NewLoader(opts ...LoaderOpts) *Loader {
	l := &Loader{
		timeColumns:  []string{DefaultTimeColumn, "half_hour_start"},
		countColumns: []string{DefaultCountColumn},
	}
	for _, opt := range opts {
		opt(l)
	}

	l.parser = NewTimeParser(l.loc, l.layouts...)

	return l
}

// Load reads the table at path using a new [Loader].
func Load(path string, opts ...LoaderOpts) (*Table, error) {
	return NewLoader(opts...).Load(path)
}

// Read reads a table from r using a new [Loader].
func Read(r io.Reader, opts ...LoaderOpts) (*Table, error) {
	return NewLoader(opts...).Read(r)
}

// Load opens path, reads every row and closes the file before returning.
// Paths ending in ".gz" or ".zst" are decompressed while reading.
func (l *Loader) Load(path string) (*Table, error) {
	logger := slog.With(slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close() //nolint:errcheck // Read-only.

	var r io.Reader = f

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		logger.Debug("decompressing gzip input")

		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %w", ErrFileAccess, err)
		}
		defer zr.Close() //nolint:errcheck // Read-only.

		r = zr

	case ".zst", ".zstd":
		logger.Debug("decompressing zstd input")

		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrFileAccess, err)
		}
		defer zr.Close()

		r = zr
	}

	t, err := l.Read(r)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded trip counts", slog.Int("records", t.Len()))

	return t, nil
}

// Read reads a header row followed by data rows from r. The returned table is
// in input order.
func (l *Loader) Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrSchema)
	}
	if err != nil {
		return nil, readError(err)
	}

	header = append([]string(nil), header...)
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	timeIdx, err := findColumn(header, l.timeColumns)
	if err != nil {
		return nil, err
	}

	countIdx, err := findColumn(header, l.countColumns)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header:      header,
		TimeColumn:  header[timeIdx],
		CountColumn: header[countIdx],
		Records:     []Record{},
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		line, _ := cr.FieldPos(0)

		start, err := l.parser.Parse(row[timeIdx])
		if err != nil {
			return nil, &RecordError{Line: line, Column: t.TimeColumn, Value: row[timeIdx], Err: err}
		}

		count, err := parseCount(row[countIdx])
		if err != nil {
			return nil, &RecordError{Line: line, Column: t.CountColumn, Value: row[countIdx], Err: err}
		}

		t.Records = append(t.Records, Record{
			HalfHourStart: start,
			TripCount:     count,
			Line:          line,
		})
	}

	return t, nil
}

// findColumn returns the index of the first header that matches one of the
// candidate names after snake_case normalization.
func findColumn(header, candidates []string) (int, error) {
	for _, c := range candidates {
		want := normalizeColumn(c)
		for i, h := range header {
			if normalizeColumn(h) == want {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: missing column %q in header %q", ErrSchema, candidates[0], header)
}

func normalizeColumn(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, err
		}

		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, errFractionalCount
		}

		if f < 0 {
			return 0, errNegativeCount
		}

		if f > MaxCount {
			return 0, errCountRange
		}

		n = int64(f)
	}

	switch {
	case n < 0:
		return 0, errNegativeCount
	case n > MaxCount:
		return 0, errCountRange
	}

	return int(n), nil
}

func readError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	return fmt.Errorf("%w: %w", ErrFileAccess, err)
}
