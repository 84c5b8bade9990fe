package barchart

import (
	"strconv"
	"time"

	"github.com/macropower/tripchart/pkg/tripdata"
)

const (
	DefaultTitle        = "Bike Trips Count by Half Hour Start Times"
	DefaultXLabel       = "Half Hour Start Time"
	DefaultYLabel       = "Trip Count"
	DefaultTickRotation = 45.0
	DefaultBarColor     = "#87ceeb"

	// DefaultTickLayout renders bucket starts the way they appear in the
	// trip exports.
	DefaultTickLayout = time.DateTime
)

// Bar is a single bucket of the chart.
type Bar struct {
	Start time.Time
	// Tick is the x-axis label.
	Tick string
	// Label is drawn just above the bar and always equals the decimal form of
	// Value.
	Label string
	Value int
}

// Chart is a vertical bar chart with one [Bar] per trip count record.
// Create instances with [New] or [FromTable].
type Chart struct {
	Title    string
	XLabel   string
	YLabel   string
	BarColor string
	Bars     []Bar
	// TickRotation is the counter-clockwise rotation of x tick labels, in
	// degrees.
	TickRotation float64
	tickLayout   string
}

type ChartOpts func(*Chart)

func WithTitle(title string) ChartOpts {
	return func(c *Chart) {
		c.Title = title
	}
}

func WithXLabel(label string) ChartOpts {
	return func(c *Chart) {
		c.XLabel = label
	}
}

func WithYLabel(label string) ChartOpts {
	return func(c *Chart) {
		c.YLabel = label
	}
}

func WithTickRotation(degrees float64) ChartOpts {
	return func(c *Chart) {
		c.TickRotation = degrees
	}
}

// WithBarColor sets the bar fill as a "#rrggbb" hex string.
func WithBarColor(color string) ChartOpts {
	return func(c *Chart) {
		if color != "" {
			c.BarColor = color
		}
	}
}

// WithTickLayout sets the [time.Time.Format] layout of x tick labels.
func WithTickLayout(layout string) ChartOpts {
	return func(c *Chart) {
		if layout != "" {
			c.tickLayout = layout
		}
	}
}

// New creates an empty [Chart] with the default decorations.
func New(opts ...ChartOpts) *Chart {
	c := &Chart{
		Title:        DefaultTitle,
		XLabel:       DefaultXLabel,
		YLabel:       DefaultYLabel,
		TickRotation: DefaultTickRotation,
		BarColor:     DefaultBarColor,
		Bars:         []Bar{},
		tickLayout:   DefaultTickLayout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FromTable creates a [Chart] with one bar per record of t, in table order.
func FromTable(t *tripdata.Table, opts ...ChartOpts) *Chart {
	c := New(opts...)
	c.Bars = make([]Bar, 0, t.Len())

	for _, r := range t.Records {
		c.Add(r.HalfHourStart, r.TripCount)
	}

	return c
}

// Add appends a bar for the bucket starting at start.
func (c *Chart) Add(start time.Time, value int) {
	c.Bars = append(c.Bars, Bar{
		Start: start,
		Tick:  start.Format(c.tickLayout),
		Label: strconv.Itoa(value),
		Value: value,
	})
}

// MaxValue returns the tallest bar's value, or zero if there are no bars.
func (c *Chart) MaxValue() int {
	m := 0
	for _, b := range c.Bars {
		m = max(m, b.Value)
	}

	return m
}

// Values returns bar heights in display order.
func (c *Chart) Values() []int {
	vs := make([]int, 0, len(c.Bars))
	for _, b := range c.Bars {
		vs = append(vs, b.Value)
	}

	return vs
}

// RGB parses [Chart.BarColor], falling back to [DefaultBarColor].
func (c *Chart) RGB() (r, g, b uint8) {
	r, g, b, ok := parseHex(c.BarColor)
	if !ok {
		r, g, b, _ = parseHex(DefaultBarColor)
	}

	return r, g, b
}
