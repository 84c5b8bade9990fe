// Package chartimage writes [barchart.Chart]s to image and document files.
//
// PNG and SVG output is drawn with [github.com/wcharczuk/go-chart/v2]
// renderers; PDF output is drawn with [github.com/phpdave11/gofpdf]. Both
// paint the same [barchart.Layout], so every format shows the same bars,
// labels and decorations. [File] is the headless display surface.
package chartimage
