package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/seed"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the supplier directory from a fixture file",
		Long: `Replace every supplier collection present in the fixture, in one
transaction. Without --file the configured seed file is used, or the
directory embedded in the binary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = app.SeedFile
			}
			fixture, err := seed.Load(path)
			if err != nil {
				return err
			}
			res, err := app.Suppliers.Seed(cmd.Context(), fixture)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, coll := range domain.SupplierCollections {
				if n, ok := res[coll]; ok {
					rows = append(rows, []string{string(coll), fmt.Sprint(n)})
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"COLLECTION", "SUPPLIERS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Fixture JSON with suppliers_faucet, suppliers_tshirt and suppliers_pants")

	return cmd
}
