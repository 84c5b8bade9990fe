package barchart

import (
	"math"
	"strconv"
)

// barFill is the fraction of each slot covered by its bar.
const barFill = 0.8

// Align is the horizontal alignment of a [Text] relative to its anchor,
// measured along the text's reading direction.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Rect is an axis-aligned rectangle in canvas units. The origin is the top
// left corner of the canvas and y grows downwards.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 {
	return r.Left + r.Width()/2
}

// CenterY returns the vertical midpoint.
func (r Rect) CenterY() float64 {
	return r.Top + r.Height()/2
}

// Text is a positioned string. X and Y locate the anchor on the text's
// baseline; which end of the text sits on the anchor is given by Align.
type Text struct {
	Body string
	X    float64
	Y    float64
	// Size is the font size in points.
	Size float64
	// Rotation is counter-clockwise, in degrees.
	Rotation float64
	Align    Align
}

// Start returns the baseline origin at which a renderer should begin drawing
// the text, given its measured unrotated width.
func (t Text) Start(width float64) (x, y float64) {
	var offset float64

	switch t.Align {
	case AlignCenter:
		offset = width / 2
	case AlignRight:
		offset = width
	case AlignLeft:
	}

	rad := t.Rotation * math.Pi / 180

	return t.X - offset*math.Cos(rad), t.Y + offset*math.Sin(rad)
}

// BarBox is the geometry of one bar.
type BarBox struct {
	Value Text
	Tick  Text
	Rect  Rect
}

// YTick is a labeled y-axis tick.
type YTick struct {
	Label Text
	Value float64
	Y     float64
}

// Layout is the geometry of a [Chart] on a canvas.
type Layout struct {
	Title  Text
	XLabel Text
	YLabel Text
	Bars   []BarBox
	YTicks []YTick
	Canvas Rect
	Plot   Rect
	// YMax is the value at the top of the plot area.
	YMax float64
	// TickLength is the length of axis tick marks.
	TickLength float64
}

// FontSizes are the font sizes, in points, used by [Chart.Layout].
type FontSizes struct {
	Title float64
	Label float64
	Tick  float64
	Value float64
}

// DefaultFontSizes are suitable for a roughly 1200x800 pixel canvas.
var DefaultFontSizes = FontSizes{
	Title: 16,
	Label: 12,
	Tick:  9,
	Value: 9,
}

// MeasureFunc returns the unrotated width and height of body drawn at size
// points, in canvas units.
type MeasureFunc func(body string, size float64) (width, height float64)

// Layout computes the geometry of the chart on a width by height canvas.
// Margins grow to fit the title, axis labels, y tick labels and rotated x
// tick labels. Bars are laid out left to right in [Chart.Bars] order.
// X tick labels end at their tick when rotated counter-clockwise and start
// there when rotated clockwise, so they always hang below the plot.
func (c *Chart) Layout(width, height float64, measure MeasureFunc, sizes FontSizes) Layout {
	canvas := Rect{Right: width, Bottom: height}
	pad := math.Max(4, 0.015*math.Min(width, height))

	yMax, step := yScale(c.MaxValue())

	_, titleH := measure(c.Title, sizes.Title)
	_, xLabelH := measure(c.XLabel, sizes.Label)
	_, yLabelH := measure(c.YLabel, sizes.Label)
	_, valueH := measure("0", sizes.Value)

	tickLen := pad / 2

	yTickLabels := []string{}
	yTickW, tickH := 0.0, 0.0

	for v := 0.0; v <= yMax+step/2; v += step {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		w, h := measure(s, sizes.Tick)
		yTickW = math.Max(yTickW, w)
		tickH = math.Max(tickH, h)
		yTickLabels = append(yTickLabels, s)
	}

	rad := c.TickRotation * math.Pi / 180
	xTickExtent, xTickOverhang := 0.0, 0.0

	for _, b := range c.Bars {
		w, h := measure(b.Tick, sizes.Tick)
		extent := math.Abs(w*math.Sin(rad)) + math.Abs(h*math.Cos(rad))
		xTickExtent = math.Max(xTickExtent, extent)
		xTickOverhang = math.Max(xTickOverhang, w*math.Cos(rad))
	}

	// Keep at least half of the canvas for the plot.
	xTickExtent = math.Max(0, math.Min(xTickExtent, height/2-2*pad-xLabelH))

	// Right-aligned ticks hang down to the left of their bar. Clockwise
	// ticks are left-aligned instead and hang down to the right, so the
	// right margin has to fit them.
	tickAlign := AlignRight
	rightMargin := 2 * pad

	if c.TickRotation < 0 {
		tickAlign = AlignLeft
		rightMargin = math.Max(rightMargin, math.Min(xTickOverhang, width/4))
	}

	plot := Rect{
		Left:   pad + yLabelH + pad + yTickW + pad/2 + tickLen,
		Top:    pad + titleH + pad + valueH,
		Right:  width - rightMargin,
		Bottom: height - pad - xLabelH - pad - xTickExtent - tickLen - pad/2,
	}

	// Tiny canvases leave no room for the plot; collapse it rather than
	// invert it.
	plot.Right = math.Max(plot.Right, plot.Left)
	plot.Bottom = math.Max(plot.Bottom, plot.Top)

	l := Layout{
		Canvas:     canvas,
		Plot:       plot,
		YMax:       yMax,
		TickLength: tickLen,
		Title: Text{
			Body:  c.Title,
			X:     width / 2,
			Y:     pad + titleH,
			Size:  sizes.Title,
			Align: AlignCenter,
		},
		XLabel: Text{
			Body:  c.XLabel,
			X:     plot.CenterX(),
			Y:     height - pad,
			Size:  sizes.Label,
			Align: AlignCenter,
		},
		YLabel: Text{
			Body:     c.YLabel,
			X:        pad + yLabelH,
			Y:        plot.CenterY(),
			Size:     sizes.Label,
			Rotation: 90,
			Align:    AlignCenter,
		},
		Bars:   make([]BarBox, 0, len(c.Bars)),
		YTicks: make([]YTick, 0, len(yTickLabels)),
	}

	for i, s := range yTickLabels {
		v := float64(i) * step
		y := plot.Bottom - v/yMax*plot.Height()
		l.YTicks = append(l.YTicks, YTick{
			Value: v,
			Y:     y,
			Label: Text{
				Body:  s,
				X:     plot.Left - tickLen - pad/2,
				Y:     y + tickH/2,
				Size:  sizes.Tick,
				Align: AlignRight,
			},
		})
	}

	if len(c.Bars) == 0 {
		return l
	}

	slot := plot.Width() / float64(len(c.Bars))
	barW := slot * barFill

	for i, b := range c.Bars {
		left := plot.Left + float64(i)*slot + (slot-barW)/2
		top := plot.Bottom - float64(b.Value)/yMax*plot.Height()
		center := left + barW/2

		l.Bars = append(l.Bars, BarBox{
			Rect: Rect{Left: left, Top: top, Right: left + barW, Bottom: plot.Bottom},
			Value: Text{
				Body:  b.Label,
				X:     center,
				Y:     top - pad/4,
				Size:  sizes.Value,
				Align: AlignCenter,
			},
			Tick: Text{
				Body:     b.Tick,
				X:        center,
				Y:        plot.Bottom + tickLen + pad/2 + tickH*math.Cos(rad),
				Size:     sizes.Tick,
				Rotation: c.TickRotation,
				Align:    tickAlign,
			},
		})
	}

	return l
}

// YScale returns the value at the top of the y axis and the tick step used
// by [Chart.Layout].
func (c *Chart) YScale() (top, step float64) {
	return yScale(c.MaxValue())
}

// yScale returns the value at the top of the y axis and the tick step. The
// top leaves headroom for the value labels above the tallest bar.
func yScale(maxValue int) (top, step float64) {
	top = math.Max(1, float64(maxValue)*1.1)
	step = math.Max(1, niceStep(top/5))

	return math.Ceil(top/step) * step, step
}

// niceStep rounds x up to 1, 2 or 5 times a power of ten.
func niceStep(x float64) float64 {
	if x <= 0 {
		return 1
	}

	exp := math.Floor(math.Log10(x))
	base := math.Pow(10, exp)

	switch f := x / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}
