package termhost

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-boot/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	readyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	waitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Rows taken by the title, status and help chrome around the feed.
const chromeRows = 6

const menuText = "scroll   ↑/↓\npage     pgup/pgdn\nquit     q\nclose    esc"

// surfaceUpMsg announces the constructed surface, once, from Init.
type surfaceUpMsg struct{}

func surfaceUp() tea.Msg { return surfaceUpMsg{} }

type bootModel struct {
	env       *Environment
	spin      spinner.Model
	feed      viewport.Model
	width     int
	height    int
	announced bool
	menuOpen  bool
}

func newBootModel(env *Environment) *bootModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = waitStyle
	return &bootModel{
		env:  env,
		spin: s,
		feed: viewport.New(0, 0),
	}
}

func (m *bootModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, surfaceUp)
}

func (m *bootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.menuOpen = false
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feed.Width = msg.Width
		m.feed.Height = max(msg.Height-chromeRows, 1)
		m.refreshFeed()

	case surfaceUpMsg:
		if !m.announced {
			m.announced = true
			m.env.fireReady()
		}

	case tea.FocusMsg:
		m.env.fireVisibility(host.Visible)

	case tea.BlurMsg:
		m.env.fireVisibility(host.Hidden)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			if msg.Button == tea.MouseButtonRight {
				if m.env.fireContextMenu() == host.Allow {
					m.menuOpen = true
				}
			} else {
				m.menuOpen = false
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refreshFeed()
		return m, cmd
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

// refreshFeed rebuilds the feed pane from the diagnostic ring. The
// pane follows the tail unless the user scrolled away from it.
func (m *bootModel) refreshFeed() {
	if m.env.cfg.Feed == nil {
		return
	}
	events := m.env.cfg.Feed.Snapshot()
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := e.Time.Format("15:04:05.000") + "  " + e.String()
		if e.Err != nil {
			line = failStyle.Render(line)
		}
		lines = append(lines, line)
	}
	follow := m.feed.AtBottom()
	m.feed.SetContent(strings.Join(lines, "\n"))
	if follow {
		m.feed.GotoBottom()
	}
}

func (m *bootModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.env.cfg.Title))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.menuOpen {
		b.WriteString(lipgloss.Place(
			m.feed.Width, m.feed.Height,
			lipgloss.Center, lipgloss.Center,
			menuStyle.Render(menuText),
		))
	} else {
		b.WriteString(m.feed.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ scroll • right-click menu • q quit"))
	return b.String()
}

func (m *bootModel) statusLine() string {
	if m.env.cfg.Status != nil && m.env.cfg.Status() {
		return readyStyle.Render("● module running")
	}
	return m.spin.View() + " starting module..."
}
