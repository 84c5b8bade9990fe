// Package barchart describes a labeled vertical bar chart of trip counts
// independently of where it is displayed.
//
// A [Chart] holds one [Bar] per record in display order. [Chart.Layout]
// computes the geometry (plot area, bar rectangles, value-label and tick
// anchors) for a canvas of a given size, which surfaces such as
// [github.com/macropower/tripchart/pkg/chartimage] then paint.
package barchart
