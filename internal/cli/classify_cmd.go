package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
)

// classifyOutput is the JSON document printed by `cotador classify`.
type classifyOutput struct {
	Classification intelligence.Classification `json:"classification"`
	Task           domain.Task                 `json:"task"`
	Suppliers      []domain.Supplier           `json:"suppliers,omitempty"`
}

func newClassifyCmd(app *App) *cobra.Command {
	var todayFlag string
	var withSuppliers bool

	cmd := &cobra.Command{
		Use:   "classify TEXT",
		Short: "Print the category and normalized task for a request as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := app.today(todayFlag)
			if err != nil {
				return err
			}
			text := joinArgs(args)
			ctx := cmd.Context()

			var out classifyOutput
			out.Classification, out.Task = app.Workflow.Normalize(ctx, text, &today)
			if withSuppliers {
				out.Suppliers = app.Workflow.Suppliers(ctx, out.Task)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&todayFlag, "today", "", "Reference date for relative dates (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&withSuppliers, "suppliers", false, "Also list the suppliers that would be asked")

	return cmd
}
