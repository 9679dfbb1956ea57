package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
	"github.com/alexanderramin/cotador/internal/domain"
)

func newSuppliersCmd(app *App) *cobra.Command {
	var serviceType string

	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "List registered suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suppliers, err := app.Suppliers.List(cmd.Context(), domain.ServiceType(serviceType))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(suppliers) == 0 {
				fmt.Fprintln(out, "No suppliers found. Run `cotador seed` to load the directory.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatSupplierList(suppliers))
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceType, "service", "", "Only this service type (faucet_repair, tshirt_sale, pants_sale)")

	return cmd
}
