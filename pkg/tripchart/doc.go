// Package tripchart turns a CSV file of half-hour bike trip counts into a
// bar chart.
//
// A [Renderer] loads the file, stable-sorts the records by bucket start time,
// builds one labeled bar per record and hands the finished chart to a
// [Surface]. Surfaces decide how the chart is presented: the terminal viewer
// in package charttui, or image and PDF files in package chartimage.
package tripchart
