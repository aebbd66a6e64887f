package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotepanel/internal/app/di"
	"quotepanel/internal/feature/quotes/transport/tui"
	"quotepanel/internal/feature/quotes/transport/view"
	"quotepanel/internal/feature/quotes/usecase"
)

// quoteCmd fetches one symbol and prints the table
var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL",
	Short: "Fetch one symbol and print its latest intraday quotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr)

		lookup := usecase.NewLookup(di.NewMarket(cfg), cfg.Panel.FetchTimeout)
		st, err := lookup.Intraday(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", args[0], err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.Render(view.Build(st)))
		return nil
	},
}
