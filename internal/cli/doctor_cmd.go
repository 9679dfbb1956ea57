package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
)

const doctorTimeout = 5 * time.Second

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the store, the LLM backend and the session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runHealthChecks(cmd.Context(), app.Health)

			rows := make([][]string, 0, len(results))
			failed := 0
			for i, err := range results {
				status := formatter.StyleGreen.Render("ok")
				detail := ""
				if err != nil {
					failed++
					status = formatter.StyleRed.Render("fail")
					detail = formatter.Dim(err.Error())
				}
				rows = append(rows, []string{app.Health[i].Name, status, detail})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"CHECK", "STATUS", "DETAIL"}, rows))

			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

// runHealthChecks probes every dependency concurrently and returns one
// result per check, in order.
func runHealthChecks(ctx context.Context, checks []HealthCheck) []error {
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	results := make([]error, len(checks))
	var g errgroup.Group
	for i, hc := range checks {
		g.Go(func() error {
			results[i] = hc.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
