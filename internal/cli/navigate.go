package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// replaceViewMsg swaps the top view, used when a phase ends and the
// previous screen has nothing left to show.
type replaceViewMsg struct {
	view View
}

// quitMsg asks the appModel to end the program.
type quitMsg struct{}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func quit() tea.Cmd {
	return func() tea.Msg { return quitMsg{} }
}
