package cli

import (
	"testing"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to the appModel internals
// (active view, breadcrumb trail, shared state) the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the quote TUI around app. A nil session opens the
// request form; otherwise the screen matching the session's phase.
func NewTestDriver(t *testing.T, app *App, s *domain.Session) *TestDriver {
	t.Helper()

	state := &SharedState{App: app, Today: friday, Session: s}
	d := teatest.New(t, newAppModel(state), teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the screen on display.
func (d *TestDriver) ActiveViewID() ViewID {
	return d.appModel().active.ID()
}

// State returns the shared state.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Trail returns the titles of the screens left behind.
func (d *TestDriver) Trail() []string {
	return d.appModel().trail
}

// IsQuitting reports whether the model asked the program to exit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}
