package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/model"
)

func bookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked datasets",
	}

	cmd.AddCommand(bookmarksAddCmd())
	cmd.AddCommand(bookmarksRemoveCmd())
	cmd.AddCommand(bookmarksListCmd())

	return cmd
}

func bookmarksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <dataset-id>",
		Short: "Bookmark a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			// Verify the dataset exists before recording anything
			dataset, err := svcs.catalog.GetDataset(ctx, args[0])
			if err != nil {
				return err
			}

			if err := svcs.store.AddBookmark(ctx, dataset.ID); err != nil {
				return err
			}
			if err := svcs.catalog.BookmarkDataset(ctx, dataset.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Bookmarked %s", cli.BookmarkIcon, dataset.Name)))
			return nil
		},
	}
}

func bookmarksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <dataset-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			if err := svcs.store.RemoveBookmark(ctx, args[0]); err != nil {
				return err
			}
			if err := svcs.catalog.RemoveBookmark(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Bookmark removed"))
			return nil
		},
	}
}

func bookmarksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarked datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			ids, err := svcs.store.ListBookmarks(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No bookmarks yet."))
				return nil
			}

			datasets := make([]model.Dataset, 0, len(ids))
			for _, id := range ids {
				dataset, err := svcs.catalog.GetDataset(ctx, id)
				if err != nil {
					// A bookmark can outlive its dataset; show the rest
					fmt.Println(cli.FormatWarning(fmt.Sprintf("%s is no longer available", id)))
					continue
				}
				datasets = append(datasets, *dataset)
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Bookmarks", cli.BookmarkIcon)))
			fmt.Println(cli.RenderDatasetTable(datasets, ""))
			return nil
		},
	}
}
