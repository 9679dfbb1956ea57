package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Workflow    service.WorkflowService
	Negotiation service.NegotiationService
	Budgets     service.BudgetService
	Suppliers   service.SupplierService

	// Health lists the dependencies checked by `cotador doctor`.
	Health []HealthCheck

	// SeedFile is the fixture used by `cotador seed` when --file is absent.
	SeedFile string

	// Now defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Nil means scripted.
	IsInteractive func() bool
}

// HealthCheck is one dependency probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRootCmd creates the top-level "cotador" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "cotador",
		Short:        "Conversational quotation assistant",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "config file (default ~/.cotador/config.yaml)")

	root.AddCommand(
		newQuoteCmd(app),
		newSeedCmd(app),
		newSuppliersCmd(app),
		newQuotesCmd(app),
		newClassifyCmd(app),
		newDoctorCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// today resolves the reference date: the --today flag when given, else
// the current UTC calendar day.
func (a *App) today(flag string) (time.Time, error) {
	if flag != "" {
		d, err := time.Parse(domain.DateLayout, flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", flag)
		}
		return d, nil
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
