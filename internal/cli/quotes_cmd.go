package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
	"github.com/alexanderramin/cotador/internal/repository"
)

func newQuotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Inspect stored quotes",
	}

	cmd.AddCommand(
		newQuotesListCmd(app),
		newQuotesShowCmd(app),
	)

	return cmd
}

func newQuotesListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			quotes, err := app.Budgets.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(quotes) == 0 {
				fmt.Fprintln(out, "No quotes yet.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatQuoteList(quotes))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of quotes")

	return cmd
}

func newQuotesShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show a quote with its accepted offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Budgets.Get(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no quote for run %q", args[0])
			}
			if err != nil {
				return err
			}
			md := formatter.QuoteMarkdown(detail.Quote, detail.Offers)
			if !raw {
				md = formatter.RenderMarkdown(md, 0)
			}
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "markdown", false, "Print the markdown source instead of rendering it")

	return cmd
}
