package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/search"
	"github.com/datafoundry/bazaar/internal/service"
)

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ds"},
		Short:   "Browse and search the dataset catalog",
	}

	cmd.AddCommand(datasetsListCmd())
	cmd.AddCommand(datasetsShowCmd())
	cmd.AddCommand(datasetsPreviewCmd())
	cmd.AddCommand(datasetsRelatedCmd())
	cmd.AddCommand(datasetsRatingsCmd())
	cmd.AddCommand(datasetsRateCmd())
	cmd.AddCommand(datasetsExportCmd())
	cmd.AddCommand(datasetsDownloadCmd())
	cmd.AddCommand(datasetsFeaturedCmd())
	cmd.AddCommand(datasetsPopularCmd())
	cmd.AddCommand(datasetsRecentCmd())
	cmd.AddCommand(datasetsCategoriesCmd())
	cmd.AddCommand(datasetsTagsCmd())

	return cmd
}

func datasetsListCmd() *cobra.Command {
	var (
		query    string
		category string
		orgID    string
		sortBy   string
		order    string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"search"},
		Short:   "List datasets, optionally searched and filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			result, err := svcs.catalog.GetDatasets(ctx, service.DatasetQuery{
				Search:         query,
				Category:       category,
				OrganizationID: orgID,
				SortBy:         sortBy,
				SortOrder:      order,
				Page:           page,
				PageSize:       pageSize,
			})
			if err != nil {
				return err
			}

			if len(result.Datasets) == 0 && query != "" {
				fmt.Println(cli.SubtleStyle.Render("No datasets match your search."))
				printSuggestions(ctx, svcs, query)
				return nil
			}

			fmt.Println(cli.RenderDatasetTable(result.Datasets, query))
			fmt.Println(cli.RenderPagination(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.TotalCount))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "search query")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&orgID, "org", "", "filter by organization ID")
	cmd.Flags().StringVar(&sortBy, "sort", "relevance", "sort key (relevance, name, updated, quality, usage)")
	cmd.Flags().StringVar(&order, "order", "desc", "sort order (asc, desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}

// printSuggestions proposes alternative queries after an empty result.
func printSuggestions(ctx context.Context, svcs *services, query string) {
	categories, err := svcs.catalog.GetCategories(ctx)
	if err != nil {
		return
	}
	tags, err := svcs.catalog.GetTags(ctx, 50)
	if err != nil {
		return
	}

	suggestions := search.Suggestions(query, model.Facets{Categories: categories, Tags: tags})
	if len(suggestions) == 0 {
		return
	}

	fmt.Println(cli.FormatInfo("Did you mean:"))
	for _, s := range suggestions {
		fmt.Printf("  %s\n", s)
	}
}

func datasetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <dataset-id>",
		Short: "Show a dataset's full record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			dataset, err := svcs.catalog.GetDataset(ctx, args[0])
			if err != nil {
				return err
			}

			// Views are tracked best-effort
			if err := svcs.catalog.TrackView(ctx, dataset.ID); err == nil {
				_ = svcs.store.RecordView(ctx, dataset.ID, time.Now())
			}

			fmt.Println(cli.RenderDatasetDetail(dataset))
			return nil
		},
	}
}

func datasetsPreviewCmd() *cobra.Command {
	var (
		limit  int
		asCSV  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview <dataset-id>",
		Short: "Show sample rows from a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			preview, err := svcs.catalog.GetPreview(ctx, args[0], limit)
			if err != nil {
				return err
			}

			if asCSV || output != "" {
				content := search.PreviewCSV(preview)
				if output == "" {
					fmt.Println(content)
					return nil
				}
				return writeExport(output, content)
			}

			fmt.Println(cli.RenderPreview(preview))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum sample rows")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print as CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to a file")

	return cmd
}

func datasetsRelatedCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related <dataset-id>",
		Short: "List datasets related to the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			related, err := svcs.catalog.GetRelatedDatasets(ctx, args[0], limit)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderDatasetTable(related, ""))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "maximum related datasets")

	return cmd
}

func datasetsRatingsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:     "ratings <dataset-id>",
		Aliases: []string{"reviews"},
		Short:   "List a dataset's reviews",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			result, err := svcs.catalog.GetRatings(ctx, args[0], page, pageSize)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderRatings(result.Ratings))
			if result.Pagination.TotalPages > 1 {
				fmt.Println(cli.RenderPagination(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.TotalCount))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "reviews per page")

	return cmd
}

func datasetsRateCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "rate <dataset-id>",
		Short: "Submit a review for a dataset",
		Args:  cobra.ExactArgs(1),
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

			submitted, err := svcs.catalog.SubmitRating(ctx, args[0], rating, comment)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rated %s: %d/5", args[0], submitted.Rating)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "rating from 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", fmt.Sprintf("review comment (at least %d characters)", model.MinCommentLength))
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("comment")

	return cmd
}

func datasetsExportCmd() *cobra.Command {
	var (
		query    string
		category string
		sortBy   string
		order    string
		output   string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching datasets as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			// Walk every page so the export covers the full match set
			var all []model.Dataset
			var bar *progressbar.ProgressBar
			page := 1
			for {
				result, err := svcs.catalog.GetDatasets(ctx, service.DatasetQuery{
					Search:    query,
					Category:  category,
					SortBy:    sortBy,
					SortOrder: order,
					Page:      page,
					PageSize:  pageSize,
				})
				if err != nil {
					return err
				}

				if bar == nil {
					bar = progressbar.NewOptions(result.Pagination.TotalCount,
						progressbar.OptionSetDescription("Exporting datasets"),
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}

				all = append(all, result.Datasets...)
				_ = bar.Add(len(result.Datasets))

				if page >= result.Pagination.TotalPages {
					break
				}
				page++
			}
			if bar != nil {
				_ = bar.Finish()
			}

			content := search.DatasetsCSV(all)
			if output == "" {
				fmt.Println(content)
				return nil
			}

			if err := writeExport(output, content); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d datasets to %s", len(all), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "search query")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort key")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to a file")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "fetch size per request")

	return cmd
}

func datasetsDownloadCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "download <dataset-id>",
		Short: "Download a dataset, or print its download link",
		Args:  cobra.ExactArgs(1),
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

			u, err := svcs.catalog.GetDownloadURL(ctx, args[0], format)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(u)
				return nil
			}

			if err := downloadFile(ctx, u, output); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Downloaded %s to %s", args[0], output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "download format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "download to a file instead of printing the link")

	return cmd
}

func downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	bar := progressbar.DefaultBytes(resp.ContentLength, "Downloading")
	if _, err := io.Copy(io.MultiWriter(f, bar), resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func datasetsFeaturedCmd() *cobra.Command {
	return collectionCmd("featured", "Show featured datasets",
		func(svcs *services) collectionFetch { return svcs.catalog.GetFeaturedDatasets })
}

func datasetsPopularCmd() *cobra.Command {
	return collectionCmd("popular", "Show the most used datasets",
		func(svcs *services) collectionFetch { return svcs.catalog.GetPopularDatasets })
}

func datasetsRecentCmd() *cobra.Command {
	return collectionCmd("recent", "Show recently updated datasets",
		func(svcs *services) collectionFetch { return svcs.catalog.GetRecentDatasets })
}

type collectionFetch func(ctx context.Context, limit int) ([]model.Dataset, error)

func collectionCmd(use, short string, pick func(*services) collectionFetch) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			datasets, err := pick(svcs)(ctx, limit)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderDatasetTable(datasets, ""))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum datasets")

	return cmd
}

func datasetsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories with dataset counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			categories, err := svcs.catalog.GetCategories(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderFacets("Categories", categories))
			return nil
		},
	}
}

func datasetsTagsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the most common tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			tags, err := svcs.catalog.GetTags(ctx, limit)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderFacets("Tags", tags))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum tags")

	return cmd
}

func writeExport(path, content string) error {
	if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
