// Package charttui displays a [barchart.Chart] in the terminal.
//
// It uses the Bubble Tea framework to draw vertical bars with their value
// labels, a y axis, time-of-day tick labels and the chart decorations. Wide
// charts scroll horizontally. [Terminal] is the interactive display surface:
// its Show method blocks until the viewer dismisses the chart.
package charttui
