package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the quote TUI. It hosts one
// view per negotiation phase and remembers the phases already left
// behind for the breadcrumb.
type appModel struct {
	state    *SharedState
	active   View
	trail    []string
	quitting bool
}

func newAppModel(state *SharedState) appModel {
	return appModel{state: state, active: initialView(state)}
}

// initialView picks the screen matching the session's phase, so a resumed
// run lands where it stopped.
func initialView(state *SharedState) View {
	switch {
	case state.Session == nil:
		return newTaskFormView(state)
	case state.Session.Closed():
		return newBudgetView(state)
	default:
		return newSupplierChatView(state)
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.active.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

	case replaceViewMsg:
		if t := m.active.Title(); t != "" {
			m.trail = append(m.trail, t)
		}
		m.active = msg.view
		return m, msg.view.Init()

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	updated, cmd := m.active.Update(msg)
	m.active = updated.(View)
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	result := strings.Join([]string{
		m.renderHeader(),
		m.active.View(),
		m.renderStatusBar(),
	}, "\n")

	// Pad to terminal height so the alt-screen renderer leaves no stale lines.
	if m.state.Height > 0 {
		if lines := strings.Count(result, "\n") + 1; lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	crumbs := append(append([]string{}, m.trail...), m.active.Title())
	header := formatter.StylePurple.Render("cotador") + " " +
		formatter.Dim("› "+strings.Join(crumbs, " › "))

	if s := m.state.Session; s != nil {
		header += "  " + formatter.Dim("[") + formatter.TruncID(s.RunID) + formatter.Dim("]") +
			" " + formatter.PhaseBadge(s.Phase)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	for _, b := range m.active.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	hints = append(hints, formatter.Dim("ctrl+c: quit"))

	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).
		Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
