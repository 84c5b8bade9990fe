package chartimage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/macropower/tripchart/pkg/barchart"
)

// ErrUnsupportedFormat indicates an output extension with no writer.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatPNG, FormatSVG, FormatPDF}

// FormatFromPath returns the [Format] matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	for _, f := range Formats {
		if string(f) == ext {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q (want one of %q)", ErrUnsupportedFormat, filepath.Ext(path), Formats)
}

// Write renders c as a width by height pixel chart in the given format.
func Write(w io.Writer, format Format, c *barchart.Chart, width, height int) error {
	switch format {
	case FormatPNG, FormatSVG:
		return writeGoChart(w, format, c, width, height)
	case FormatPDF:
		return writePDF(w, c, width, height)
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
