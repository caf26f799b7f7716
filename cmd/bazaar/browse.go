package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/cart"
	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Browse the catalog interactively.

Search as you type, page through results, inspect datasets, and collect
access requests in a cart before submitting them as one batch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(os.Stdout)
			ctx := handler.HandleInterrupts(cmd.Context(), true)

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			err = tui.Run(ctx, svcs.catalog, svcs.session, cart.NewStore())
			if handler.WasInterrupted() {
				return nil
			}
			return err
		},
	}
}
