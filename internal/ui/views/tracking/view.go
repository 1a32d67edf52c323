package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "timetrack/internal/modules/session/dto"
	"timetrack/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// ElapsedMsg carries one live duration update.
type ElapsedMsg struct {
	Formatted string
}

// watchDoneMsg is sent when the elapsed feed ends.
type watchDoneMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("ctrl+c/q", "stop display")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}, {k.Help}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the live tracking panel. It only renders what it is sent; the
// elapsed time is computed outside the program.
type Model struct {
	activity  string
	category  string
	startedAt time.Time
	elapsed   string
	keys      keyMap
	help      help.Model
	detached  bool
	width     int
}

func New(activity, category string, startedAt time.Time) Model {
	return Model{
		activity:  activity,
		category:  category,
		startedAt: startedAt,
		elapsed:   "00:00:00",
		keys:      defaultKeys(),
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case ElapsedMsg:
		m.elapsed = msg.Formatted
	case watchDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.detached = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// Detached reports whether the user closed the display with a key.
func (m Model) Detached() bool { return m.detached }

func (m Model) View() string {
	label := theme.Muted.Width(10)
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Tracking") + "\n\n")
	sb.WriteString(label.Render("Activity") + theme.Hot.Render(m.activity) + "\n")
	sb.WriteString(label.Render("Category") + m.category + "\n")
	sb.WriteString(label.Render("Started") + m.startedAt.Format("15:04:05") + "\n")
	sb.WriteString(label.Render("Duration") + theme.Success.Render(m.elapsed))

	panel := theme.PaneActive.Render(sb.String())
	return lipgloss.JoinVertical(lipgloss.Left, panel, m.help.View(m.keys)) + "\n"
}

// ─── program ─────────────────────────────────────────────────────────────────

// Watcher feeds elapsed updates to sink until ctx is done.
type Watcher func(ctx context.Context, sink func(sessiondto.ElapsedOutput))

// Run shows the panel until ctx is done or the user quits, and stops the
// watcher before returning. It reports whether the user closed the panel.
func Run(ctx context.Context, in io.Reader, out io.Writer, m Model, watch Watcher) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	done := make(chan struct{})
	go func() {
		defer close(done)
		watch(ctx, func(e sessiondto.ElapsedOutput) {
			p.Send(ElapsedMsg{Formatted: e.Formatted})
		})
		p.Send(watchDoneMsg{})
	}()

	final, err := p.Run()
	cancel()
	<-done
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return false, fmt.Errorf("live display: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Detached(), nil
	}
	return false, nil
}

// LineSink prints one line per update, for output that is not a terminal.
func LineSink(w io.Writer) func(sessiondto.ElapsedOutput) {
	return func(e sessiondto.ElapsedOutput) {
		fmt.Fprintf(w, "Duration: %s\n", e.Formatted)
	}
}
