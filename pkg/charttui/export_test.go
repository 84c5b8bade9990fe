package charttui

import (
	"io"
	"log/slog"
)

// TeaMsgWriteLog is an alias for [teaMsgWriteLog] exported for testing.
type TeaMsgWriteLog = teaMsgWriteLog

// NewTestChartModel creates a [ChartModel] with a fixed terminal size.
func NewTestChartModel(m *ChartModel, width, height int) *ChartModel {
	m.width = width
	m.height = height
	m.help.Width = width
	m.clampOffset()

	return m
}

// Offset returns the index of the first visible bar.
func (m *ChartModel) Offset() int {
	return m.offset
}

// VisibleBars returns how many bars fit the current width.
func (m *ChartModel) VisibleBars() int {
	return m.visibleBars()
}

// LogHandler returns the handler Show installs, writing to w instead of the
// running program.
func (t *Terminal) LogHandler(w io.Writer) slog.Handler {
	return t.logHandler(w)
}
