package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
)

// taskFormView collects the customer's request with a huh form and starts
// the run once it is submitted.
type taskFormView struct {
	state   *SharedState
	form    *huh.Form
	text    string
	err     error
	started bool
}

func newTaskFormView(state *SharedState) *taskFormView {
	v := &taskFormView{state: state}
	v.form = newTaskForm(&v.text)
	return v
}

func newTaskForm(text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Customer request").
				Description(`What should be quoted, e.g. "torneira pingando, terça de manhã"`).
				Value(text).
				Validate(validateRequest),
		),
	).WithShowHelp(false)
}

func validateRequest(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("the request cannot be empty")
	}
	return nil
}

func (v *taskFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *taskFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.started {
		return v, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, quit()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		return v, v.begin()
	case huh.StateAborted:
		return v, quit()
	}
	return v, cmd
}

// begin starts the run. On failure the form is rebuilt with the same text
// so the operator can retry.
func (v *taskFormView) begin() tea.Cmd {
	s, err := v.state.App.Negotiation.Begin(v.state.context(), v.text, v.state.Today)
	if err != nil {
		v.err = err
		v.form = newTaskForm(&v.text)
		return v.form.Init()
	}
	v.err = nil
	v.started = true
	v.state.Session = s
	return replaceView(newSupplierChatView(v.state))
}

func (v *taskFormView) View() string {
	out := v.form.View()
	if v.err != nil {
		out += "\n" + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	return out
}

func (v *taskFormView) ID() ViewID    { return ViewTaskForm }
func (v *taskFormView) Title() string { return "Request" }
func (v *taskFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start quote")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
