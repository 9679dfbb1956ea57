package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
	"github.com/alexanderramin/cotador/internal/domain"
)

// supplierChatView is the operator's side of the supplier conversation:
// it shows the question for the current supplier and relays the replies
// the operator pastes back.
type supplierChatView struct {
	state    *SharedState
	input    textinput.Model
	supplier *domain.Supplier
	lines    []string
	err      error
}

func newSupplierChatView(state *SharedState) *supplierChatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Placeholder = "supplier's reply"

	v := &supplierChatView{state: state, input: ti}
	v.nextSupplier()
	return v
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *supplierChatView) Init() tea.Cmd {
	if v.supplier == nil && v.err == nil {
		return v.finish()
	}
	return textinput.Blink
}

func (v *supplierChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return v, v.submit()
		case "ctrl+f":
			return v, v.followUp()
		case "ctrl+n":
			return v, v.skip()
		case "ctrl+e":
			return v, v.end()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *supplierChatView) View() string {
	s := v.state.Session
	limit := s.MaxOffers
	if limit <= 0 {
		limit = domain.DefaultMaxOffers
	}

	var b strings.Builder
	b.WriteString(formatter.FormatTaskCard(s.Task))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("offers %d/%d · %d waiting", len(s.Offers), limit, len(s.Queue))))
	b.WriteString("\n")

	lines := v.lines
	if v.state.Height > 0 {
		if room := v.state.ContentHeight() - 4; room > 0 && len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	name := "supplier"
	if v.supplier != nil {
		name = v.supplier.DisplayName()
	}
	b.WriteString(formatter.StyleBlue.Render(name) + formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}

// ── View interface ───────────────────────────────────────────────────────────

func (v *supplierChatView) ID() ViewID    { return ViewSupplierChat }
func (v *supplierChatView) Title() string { return "Suppliers" }
func (v *supplierChatView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit reply")),
		key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "follow up")),
		key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "skip")),
		key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "budget now")),
	}
}

// ── actions ──────────────────────────────────────────────────────────────────

// nextSupplier loads the supplier under negotiation and prints its
// conversation so far, which for a fresh supplier is just the question.
func (v *supplierChatView) nextSupplier() {
	sup, err := v.state.App.Negotiation.Current(v.state.context(), v.state.Session)
	if err != nil {
		v.err = err
		return
	}
	v.supplier = sup
	if sup == nil {
		return
	}
	v.lines = append(v.lines, "", formatter.FormatSupplierHeading(*sup))
	for _, e := range v.state.Session.Transcript {
		v.lines = append(v.lines, formatter.FormatExchange(e, sup.DisplayName()))
	}
}

func (v *supplierChatView) takeInput() string {
	answer := strings.TrimSpace(v.input.Value())
	v.input.Reset()
	return answer
}

func (v *supplierChatView) recordReply(answer string) {
	if answer == "" {
		return
	}
	v.lines = append(v.lines, formatter.FormatExchange(
		domain.Exchange{Speaker: domain.SpeakerSupplier, Text: answer}, v.supplier.DisplayName()))
}

func (v *supplierChatView) submit() tea.Cmd {
	if v.supplier == nil || strings.TrimSpace(v.input.Value()) == "" {
		return nil
	}
	answer := v.takeInput()
	v.recordReply(answer)

	res, err := v.state.App.Negotiation.Submit(v.state.context(), v.state.Session, answer)
	if err != nil {
		v.err = err
		return nil
	}
	v.lines = append(v.lines, formatter.FormatInterpretation(res))
	return v.advance()
}

func (v *supplierChatView) followUp() tea.Cmd {
	if v.supplier == nil {
		return nil
	}
	answer := v.takeInput()
	v.recordReply(answer)

	out, err := v.state.App.Negotiation.FollowUp(v.state.context(), v.state.Session, answer)
	if err != nil {
		v.err = err
		return nil
	}
	if out.Asked {
		v.lines = append(v.lines, formatter.FormatExchange(
			domain.Exchange{Speaker: domain.SpeakerAttendant, Text: out.Question}, v.supplier.DisplayName()))
		return nil
	}
	if out.Interpretation != nil {
		v.lines = append(v.lines, formatter.FormatInterpretation(*out.Interpretation))
	}
	return v.advance()
}

func (v *supplierChatView) skip() tea.Cmd {
	if v.supplier == nil {
		return nil
	}
	skipped := *v.supplier
	if err := v.state.App.Negotiation.Skip(v.state.context(), v.state.Session); err != nil {
		v.err = err
		return nil
	}
	v.input.Reset()
	v.lines = append(v.lines, formatter.FormatSkipped(skipped))
	return v.advance()
}

func (v *supplierChatView) end() tea.Cmd {
	if err := v.state.App.Negotiation.End(v.state.context(), v.state.Session); err != nil {
		v.err = err
		return nil
	}
	return v.finish()
}

func (v *supplierChatView) advance() tea.Cmd {
	v.err = nil
	if v.state.Session.Closed() {
		return v.finish()
	}
	v.nextSupplier()
	if v.supplier == nil && v.err == nil {
		return v.finish()
	}
	return nil
}

// finish renders the budget and hands over to the budget view.
func (v *supplierChatView) finish() tea.Cmd {
	q, err := v.state.App.Negotiation.Budget(v.state.context(), v.state.Session)
	if err != nil {
		v.err = err
		return nil
	}
	v.state.Quote = &q
	return replaceView(newBudgetView(v.state))
}
