package chartimage

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/macropower/tripchart/pkg/barchart"
)

var (
	axisColor       = drawing.ColorBlack
	textColor       = drawing.ColorBlack
	backgroundColor = drawing.ColorWhite
)

func writeGoChart(w io.Writer, format Format, c *barchart.Chart, width, height int) error {
	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}

	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create %s renderer: %w", format, err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	r.SetFont(font)

	measure := func(body string, size float64) (float64, float64) {
		r.SetFontSize(size)
		b := r.MeasureText(body)

		return float64(b.Width()), float64(b.Height())
	}

	l := c.Layout(float64(width), float64(height), measure, barchart.DefaultFontSizes)

	fillRect(r, l.Canvas, backgroundColor, backgroundColor)

	red, green, blue := c.RGB()
	barColor := drawing.Color{R: red, G: green, B: blue, A: 255}

	for _, b := range l.Bars {
		fillRect(r, b.Rect, barColor, barColor)
	}

	drawLine(r, l.Plot.Left, l.Plot.Top, l.Plot.Left, l.Plot.Bottom)
	drawLine(r, l.Plot.Left, l.Plot.Bottom, l.Plot.Right, l.Plot.Bottom)

	for _, t := range l.YTicks {
		drawLine(r, l.Plot.Left-l.TickLength, t.Y, l.Plot.Left, t.Y)
		drawText(r, t.Label)
	}

	for _, b := range l.Bars {
		drawLine(r, b.Rect.CenterX(), l.Plot.Bottom, b.Rect.CenterX(), l.Plot.Bottom+l.TickLength)
		drawText(r, b.Value)
		drawText(r, b.Tick)
	}

	drawText(r, l.Title)
	drawText(r, l.XLabel)
	drawText(r, l.YLabel)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("save %s: %w", format, err)
	}

	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}

func fillRect(r chart.Renderer, b barchart.Rect, fill, stroke drawing.Color) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(1)
	r.MoveTo(px(b.Left), px(b.Top))
	r.LineTo(px(b.Right), px(b.Top))
	r.LineTo(px(b.Right), px(b.Bottom))
	r.LineTo(px(b.Left), px(b.Bottom))
	r.Close()
	r.FillStroke()
}

func drawLine(r chart.Renderer, x1, y1, x2, y2 float64) {
	r.SetStrokeColor(axisColor)
	r.SetStrokeWidth(1)
	r.MoveTo(px(x1), px(y1))
	r.LineTo(px(x2), px(y2))
	r.Stroke()
}

func drawText(r chart.Renderer, t barchart.Text) {
	if t.Body == "" {
		return
	}

	r.SetFontSize(t.Size)
	r.SetFontColor(textColor)

	b := r.MeasureText(t.Body)
	x, y := t.Start(float64(b.Width()))

	if t.Rotation != 0 {
		// Renderers rotate clockwise because y grows downwards.
		r.SetTextRotation(-t.Rotation * math.Pi / 180)
		defer r.ClearTextRotation()
	}

	r.Text(t.Body, px(x), px(y))
}
