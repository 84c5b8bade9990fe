package charttui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	axis   lipgloss.Style
	value  lipgloss.Style
	tick   lipgloss.Style
	status lipgloss.Style
}

var defaultStyles = styles{
	title:  lipgloss.NewStyle().Bold(true).Margin(1, 2, 0, 2),
	label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	axis:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	value:  lipgloss.NewStyle().Foreground(lipgloss.Color("211")),
	tick:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(0, 2),
}

type (
	// Sent to write a log message.
	teaMsgWriteLog string
)

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Home, k.End},
		{k.Quit},
	}
}

var defaultKeys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "scroll left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "scroll right"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first bucket"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last bucket"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func writeLog(msg teaMsgWriteLog, width int) tea.Cmd {
	logMsg := string(msg)
	logMsg = strings.Trim(logMsg, "\r\n")
	logMsg = lipgloss.NewStyle().Width(max(0, width-2)).Render(logMsg)

	return tea.Println(logMsg)
}
