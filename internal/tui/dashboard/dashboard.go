// Package dashboard provides an interactive overview of owned namespaces.
package dashboard

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ASoldo/jarvisctl/internal/namespace"
	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// DefaultRefreshInterval is how often the namespace list is re-fetched.
const DefaultRefreshInterval = 2 * time.Second

// refreshMsg carries a completed discovery scan.
type refreshMsg struct {
	listing *namespace.Listing
	err     error
}

// tickMsg schedules the next periodic refresh.
type tickMsg time.Time

// deletedMsg reports a completed delete, triggering an immediate refresh.
type deletedMsg struct{ err error }

// KeyMap defines dashboard keybindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Attach  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var dashKeys = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Attach:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "attach")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the dashboard model.
type Model struct {
	client  tmux.Runner
	log     *slog.Logger
	listing *namespace.Listing
	cursor  int
	spin    spinner.Model
	loading bool
	err     error
	width   int

	selected namespace.Name // set when the user picked a namespace to attach
	quitting bool
}

// New creates a dashboard over the given tmux client.
func New(client tmux.Runner, log *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{client: client, log: log, spin: s, loading: true}
}

// Selected returns the namespace the user chose to attach to, if any.
func (m Model) Selected() namespace.Name {
	return m.selected
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refresh(), tick())
}

func (m Model) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		listing, err := namespace.List(client)
		return refreshMsg{listing: listing, err: err}
	}
}

// current returns the namespace under the cursor, if any.
func (m Model) current() (namespace.Name, bool) {
	if m.listing == nil || m.cursor < 0 || m.cursor >= len(m.listing.Namespaces) {
		return "", false
	}
	return m.listing.Namespaces[m.cursor].Name, true
}

func tick() tea.Cmd {
	return tea.Tick(DefaultRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, dashKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, dashKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, dashKeys.Down):
			if m.listing != nil && m.cursor < len(m.listing.Namespaces)-1 {
				m.cursor++
			}
		case key.Matches(msg, dashKeys.Refresh):
			m.loading = true
			return m, m.refresh()
		case key.Matches(msg, dashKeys.Attach):
			if ns, ok := m.current(); ok {
				m.selected = ns
				m.quitting = true
				return m, tea.Quit
			}
		case key.Matches(msg, dashKeys.Delete):
			if ns, ok := m.current(); ok {
				client, log := m.client, m.log
				m.loading = true
				return m, func() tea.Msg {
					err := namespace.Delete(client, ns)
					if err == nil {
						log.Info("deleted namespace", "namespace", ns)
					}
					return deletedMsg{err: err}
				}
			}
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case refreshMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.listing = msg.listing
			if n := len(m.listing.Namespaces); n > 0 && m.cursor >= n {
				m.cursor = n - 1
			}
		}
		return m, nil

	case deletedMsg:
		m.err = msg.err
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("jarvisctl namespaces"))
	if m.loading {
		b.WriteString(" " + m.spin.View())
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	case m.listing == nil || len(m.listing.Namespaces) == 0:
		b.WriteString("(none)\n")
	default:
		for i, s := range m.listing.Namespaces {
			line := strings.TrimSpace(s.Info)
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	help := "↑/k up · ↓/j down · enter attach · d delete · r refresh · q quit"
	if m.width > 0 {
		help = wordwrap.String(help, m.width)
	}
	b.WriteString("\n" + helpStyle.Render(help) + "\n")
	return b.String()
}
