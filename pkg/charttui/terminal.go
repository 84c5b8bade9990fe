package charttui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tripchart/pkg/barchart"
	"github.com/macropower/tripchart/pkg/log"
)

// Terminal is the interactive display surface. While a chart is shown, log
// records are printed above it instead of being written to the terminal
// directly. Create instances with [NewTerminal].
type Terminal struct {
	p      *tea.Program
	w      io.Writer
	opts   []tea.ProgramOption
	format log.Format
	lvl    slog.Level
	mu     sync.Mutex
}

// NewTerminal creates a [Terminal] drawing to w. Log records emitted while a
// chart is shown are formatted with lvl and format. Additional program
// options, such as [tea.WithInput], are passed to every program it starts.
func NewTerminal(w io.Writer, lvl slog.Level, format log.Format, opts ...tea.ProgramOption) *Terminal {
	return &Terminal{
		w:      w,
		lvl:    lvl,
		format: format,
		opts:   opts,
	}
}

func (t *Terminal) logHandler(w io.Writer) slog.Handler {
	return log.CreateHandler(w, t.lvl, t.format)
}

func (t *Terminal) broadcastEvent(evt any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.p != nil {
		t.p.Send(evt)
	}
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

// Show displays c and blocks until the viewer dismisses it or ctx is done.
func (t *Terminal) Show(ctx context.Context, c *barchart.Chart) error {
	opts := append([]tea.ProgramOption{
		tea.WithOutput(t.w),
		tea.WithContext(ctx),
	}, t.opts...)

	t.mu.Lock()
	t.p = tea.NewProgram(NewChartModel(c), opts...)
	p := t.p
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.p = nil
		t.mu.Unlock()
	}()

	prev := slog.Default()
	prev.Debug("showing chart", slog.Int("bars", len(c.Bars)))

	slog.SetDefault(slog.New(t.logHandler(t)))

	defer slog.SetDefault(prev)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("launch tui: %w", err)
	}

	return nil
}
