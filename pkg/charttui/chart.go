package charttui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tripchart/pkg/barchart"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minPlotRows   = 5

	// Lines around the plot rows: title (2), y label, baseline, time and
	// date ticks, x label, status and help.
	chromeLines = 9

	margin         = "  "
	tickTimeLayout = "15:04"
	tickDateLayout = "Jan 2"
)

// Partial blocks indexed by eighths of a cell.
var blocks = []string{"", "▁", "▂", "▃", "▄", "▅", "▆", "▇"}

// ChartModel draws a [barchart.Chart] as vertical bars of block characters.
// Create instances with [NewChartModel].
type ChartModel struct {
	chart    *barchart.Chart
	printer  *message.Printer
	barStyle lipgloss.Style
	keys     keyMap
	help     help.Model
	width    int
	height   int
	offset   int
	total    int
}

// NewChartModel creates a [ChartModel] showing c from its first bar.
func NewChartModel(c *barchart.Chart) *ChartModel {
	color := c.BarColor
	if !barchart.ValidColor(color) {
		color = barchart.DefaultBarColor
	}

	total := 0
	for _, v := range c.Values() {
		total += v
	}

	return &ChartModel{
		chart:    c,
		printer:  message.NewPrinter(language.English),
		barStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
		keys:     defaultKeys,
		help:     help.New(),
		total:    total,
	}
}

func (m *ChartModel) Init() tea.Cmd {
	return nil
}

//nolint:ireturn // Third-party.
func (m *ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampOffset()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.offset--
		case key.Matches(msg, m.keys.Right):
			m.offset++
		case key.Matches(msg, m.keys.Home):
			m.offset = 0
		case key.Matches(msg, m.keys.End):
			m.offset = len(m.chart.Bars)
		}

		m.clampOffset()

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)
	}

	return m, nil
}

func (m *ChartModel) View() string {
	var out strings.Builder

	out.WriteString(defaultStyles.title.Render(m.chart.Title) + "\n")
	out.WriteString(margin + defaultStyles.label.Render(m.chart.YLabel) + "\n")

	rows := m.plotRows()
	scale := float64(rows - 1)
	yMax, step := m.chart.YScale()
	gw := m.gutterWidth()

	// Row indexes count up from the bottom plot row. A tick at value v marks
	// the row whose top edge is v.
	ticks := map[int]string{}
	for v := step; v <= yMax+step/2; v += step {
		row := int(math.Round(v/yMax*scale)) - 1
		if row >= 0 {
			ticks[row] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	first, last := m.visibleRange()
	bars := m.chart.Bars[first:last]
	colW := m.columnWidth()
	barW := colW - 1

	eighths := make([]int, len(bars))
	for i, b := range bars {
		eighths[i] = int(math.Round(float64(b.Value) / yMax * scale * 8))
	}

	for row := rows - 1; row >= 0; row-- {
		label, isTick := ticks[row]

		axis := "│"
		if isTick {
			axis = "┤"
		}

		fmt.Fprintf(&out, "%s%*s %s", margin, gw, label, defaultStyles.axis.Render(axis))

		for i, b := range bars {
			out.WriteString(m.cell(b, eighths[i], row, barW) + " ")
		}

		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "%s%*s %s\n", margin, gw, "0",
		defaultStyles.axis.Render("└"+strings.Repeat("─", len(bars)*colW)))

	pad := margin + strings.Repeat(" ", gw+2)
	out.WriteString(pad + defaultStyles.tick.Render(timeLine(bars, colW)) + "\n")
	out.WriteString(pad + defaultStyles.tick.Render(dateLine(bars, colW)) + "\n")

	xLabel := lipgloss.PlaceHorizontal(gw+2+len(bars)*colW, lipgloss.Center, m.chart.XLabel)
	out.WriteString(margin + defaultStyles.label.Render(xLabel) + "\n")

	out.WriteString(defaultStyles.status.Render(m.status(first, last)) + "\n")
	out.WriteString(margin + m.help.View(m.keys) + "\n")

	return out.String()
}

func (m *ChartModel) cell(b barchart.Bar, eighths, row, barW int) string {
	full, rem := eighths/8, eighths%8

	occupied := full
	if rem > 0 {
		occupied++
	}

	switch {
	case row < full:
		return m.barStyle.Render(strings.Repeat("█", barW))
	case row == full && rem > 0:
		return m.barStyle.Render(strings.Repeat(blocks[rem], barW))
	case row == occupied:
		return defaultStyles.value.Render(center(b.Label, barW))
	}

	return strings.Repeat(" ", barW)
}

func (m *ChartModel) status(first, last int) string {
	n := len(m.chart.Bars)
	if n == 0 {
		return "no trip counts to display"
	}

	return m.printer.Sprintf("%d buckets • %d trips • showing %d-%d", n, m.total, first+1, last)
}

func (m *ChartModel) plotRows() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}

	return max(minPlotRows, h-chromeLines)
}

// columnWidth fits the widest value label and an HH:MM tick, plus a gap.
func (m *ChartModel) columnWidth() int {
	w := len(tickTimeLayout)
	for _, b := range m.chart.Bars {
		w = max(w, lipgloss.Width(b.Label))
	}

	return w + 1
}

func (m *ChartModel) gutterWidth() int {
	yMax, step := m.chart.YScale()

	w := 1
	for v := step; v <= yMax+step/2; v += step {
		w = max(w, len(strconv.FormatFloat(v, 'f', -1, 64)))
	}

	return w
}

func (m *ChartModel) visibleBars() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}

	avail := w - len(margin) - m.gutterWidth() - 2

	return max(1, avail/m.columnWidth())
}

func (m *ChartModel) visibleRange() (first, last int) {
	first = m.offset
	last = min(len(m.chart.Bars), first+m.visibleBars())

	return first, last
}

func (m *ChartModel) clampOffset() {
	maxOffset := max(0, len(m.chart.Bars)-m.visibleBars())
	m.offset = min(max(0, m.offset), maxOffset)
}

func timeLine(bars []barchart.Bar, colW int) string {
	var sb strings.Builder
	for _, b := range bars {
		sb.WriteString(center(b.Start.Format(tickTimeLayout), colW-1) + " ")
	}

	return strings.TrimRight(sb.String(), " ")
}

// dateLine labels the first visible bar and every bar that starts a new day.
func dateLine(bars []barchart.Bar, colW int) string {
	line := []rune(strings.Repeat(" ", len(bars)*colW))
	end := 0

	for i, b := range bars {
		day := b.Start.Format(tickDateLayout)
		if i > 0 && day == bars[i-1].Start.Format(tickDateLayout) {
			continue
		}

		pos := i * colW
		if pos < end {
			continue
		}

		for j, r := range day {
			if pos+j < len(line) {
				line[pos+j] = r
			}
		}

		end = pos + len(day) + 1
	}

	return strings.TrimRight(string(line), " ")
}

func center(s string, w int) string {
	gap := max(0, w-lipgloss.Width(s))
	left := gap / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
