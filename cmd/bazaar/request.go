package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/cart"
	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/model"
)

func requestCmd() *cobra.Command {
	var (
		requestType   string
		priority      string
		justification string
	)

	cmd := &cobra.Command{
		Use:   "request <dataset-id> [dataset-id...]",
		Short: "Request access to one or more datasets",
		Long: `Request access to one or more datasets in a single batch.

Each dataset becomes one access request; all requests in the batch share the
request type, priority, and justification given here.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			if err := svcs.session.RequireAuth(); err != nil {
				return err
			}

			store := cart.NewStore()
			for _, id := range args {
				dataset, err := svcs.catalog.GetDataset(ctx, id)
				if err != nil {
					return err
				}

				item := model.CartItem{
					Dataset:       *dataset,
					RequestType:   model.RequestType(requestType),
					Priority:      model.RequestPriority(priority),
					Justification: justification,
				}
				if err := store.Add(item); err != nil {
					return err
				}
			}

			requests, err := store.Submit(ctx, svcs.catalog)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Submitted %d access request(s)", len(requests))))
			for _, r := range requests {
				fmt.Printf("  %s  %s %s\n",
					cli.SubtleStyle.Render(r.ID),
					r.DatasetName,
					cli.SubtleStyle.Render(fmt.Sprintf("(%s, %s)", r.RequestType, r.Priority)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&requestType, "type", "t", string(model.RequestAccess), "request type (access, download, api, consultation)")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityStandard), "priority (standard, urgent, critical)")
	cmd.Flags().StringVarP(&justification, "justification", "j", "", "business justification")

	return cmd
}
