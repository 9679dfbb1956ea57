package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
)

// budgetView shows the closed run's quote in a scrollable viewport.
type budgetView struct {
	state *SharedState
	vp    viewport.Model
	err   error
}

func newBudgetView(state *SharedState) *budgetView {
	v := &budgetView{state: state, vp: viewport.New(0, 0)}
	if state.Quote == nil && state.Session != nil {
		q, err := state.App.Negotiation.Budget(state.context(), state.Session)
		if err != nil {
			v.err = err
		} else {
			state.Quote = &q
		}
	}
	v.resize()
	return v
}

func (v *budgetView) resize() {
	v.vp.Width = max(v.state.Width, 20)
	v.vp.Height = v.state.ContentHeight()
	if v.state.Quote != nil {
		md := formatter.QuoteMarkdown(*v.state.Quote, nil)
		v.vp.SetContent(formatter.RenderMarkdown(md, v.state.Width))
	}
}

func (v *budgetView) Init() tea.Cmd { return nil }

func (v *budgetView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter":
			return v, quit()
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *budgetView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render("Error: " + v.err.Error())
	}
	return v.vp.View()
}

func (v *budgetView) ID() ViewID    { return ViewBudget }
func (v *budgetView) Title() string { return "Budget" }
func (v *budgetView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("q", "enter"), key.WithHelp("q", "done")),
	}
}
