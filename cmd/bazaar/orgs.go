package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/service"
)

func orgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Browse publishing organizations",
	}

	cmd.AddCommand(orgsListCmd())
	cmd.AddCommand(orgsShowCmd())
	cmd.AddCommand(orgsDatasetsCmd())

	return cmd
}

func orgsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			orgs, err := svcs.directory.GetOrganizations(ctx)
			if err != nil {
				return err
			}

			for _, org := range orgs {
				fmt.Printf("%s  %s %s\n",
					cli.BoldStyle.Render(org.ID),
					org.Name,
					cli.SubtleStyle.Render(fmt.Sprintf("(%d datasets)", len(org.DatasetIDs))))
			}
			return nil
		},
	}
}

func orgsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <org-id>",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			org, err := svcs.directory.GetOrganization(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(org.Name))
			fmt.Println(cli.SubtitleStyle.Render(org.ID))
			if org.Description != "" {
				fmt.Println(org.Description)
			}
			fmt.Printf("Datasets: %d\n", len(org.DatasetIDs))
			return nil
		},
	}
}

func orgsDatasetsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "datasets <org-id>",
		Short: "List an organization's datasets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			result, err := svcs.directory.GetOrganizationDatasets(ctx, args[0], service.DatasetQuery{
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderDatasetTable(result.Datasets, ""))
			fmt.Println(cli.RenderPagination(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.TotalCount))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}
