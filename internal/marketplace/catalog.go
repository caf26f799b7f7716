// Package marketplace provides the dataset catalog, organization directory,
// and user profile services. The HTTP implementations talk to the
// marketplace backend; the in-memory implementations serve demo and test
// runs from fixtures.
package marketplace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/datafoundry/bazaar/internal/api"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
	"github.com/datafoundry/bazaar/internal/transform"
)

// Catalog implements service.DatasetCatalog against the marketplace HTTP API.
type Catalog struct {
	client *api.Client
}

// NewCatalog creates an HTTP-backed catalog.
func NewCatalog(client *api.Client) *Catalog {
	return &Catalog{client: client}
}

// GetDatasets fetches one page of datasets matching the query.
func (c *Catalog) GetDatasets(ctx context.Context, query service.DatasetQuery) (*service.DatasetPage, error) {
	endpoint := "/datasets" + api.BuildQuery(map[string]any{
		"search":         query.Search,
		"category":       query.Category,
		"organizationId": query.OrganizationID,
		"sortBy":         query.SortBy,
		"sortOrder":      query.SortOrder,
		"page":           query.Page,
		"pageSize":       query.PageSize,
	})

	body, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch datasets: %w", err)
	}

	envelope, err := api.DecodePaginated[transform.RawDataset](body)
	if err != nil {
		return nil, err
	}

	return &service.DatasetPage{
		Datasets:   transform.Datasets(envelope.Data),
		Pagination: pageFrom(envelope.Pagination),
	}, nil
}

// GetDataset fetches a single dataset by ID.
func (c *Catalog) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	body, err := c.client.Get(ctx, "/datasets/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", id, err)
	}

	raw, err := api.DecodeResponse[transform.RawDataset](body)
	if err != nil {
		return nil, err
	}

	dataset := transform.Dataset(raw)
	return &dataset, nil
}

// GetFeaturedDatasets fetches the curated featured collection.
func (c *Catalog) GetFeaturedDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	return c.collection(ctx, "/datasets/featured", limit)
}

// GetPopularDatasets fetches the most-used datasets.
func (c *Catalog) GetPopularDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	return c.collection(ctx, "/datasets/popular", limit)
}

// GetRecentDatasets fetches the most recently updated datasets.
func (c *Catalog) GetRecentDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	return c.collection(ctx, "/datasets/recent", limit)
}

// GetRelatedDatasets fetches datasets related to the given one.
func (c *Catalog) GetRelatedDatasets(ctx context.Context, datasetID string, limit int) ([]model.Dataset, error) {
	return c.collection(ctx, "/datasets/"+url.PathEscape(datasetID)+"/related", limit)
}

func (c *Catalog) collection(ctx context.Context, endpoint string, limit int) ([]model.Dataset, error) {
	body, err := c.client.Get(ctx, endpoint+api.BuildQuery(map[string]any{"limit": limit}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}

	raw, err := api.DecodeResponse[[]transform.RawDataset](body)
	if err != nil {
		return nil, err
	}

	return transform.Datasets(raw), nil
}

// GetPreview fetches sample rows for a dataset.
func (c *Catalog) GetPreview(ctx context.Context, datasetID string, limit int) (*model.DatasetPreview, error) {
	endpoint := "/datasets/" + url.PathEscape(datasetID) + "/preview" + api.BuildQuery(map[string]any{"limit": limit})

	body, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preview for %s: %w", datasetID, err)
	}

	raw, err := api.DecodeResponse[transform.RawPreview](body)
	if err != nil {
		return nil, err
	}

	return transform.Preview(&raw), nil
}

// GetRatings fetches one page of ratings for a dataset.
func (c *Catalog) GetRatings(ctx context.Context, datasetID string, page, pageSize int) (*service.RatingPage, error) {
	endpoint := "/datasets/" + url.PathEscape(datasetID) + "/ratings" + api.BuildQuery(map[string]any{
		"page":     page,
		"pageSize": pageSize,
	})

	body, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings for %s: %w", datasetID, err)
	}

	envelope, err := api.DecodePaginated[transform.RawRating](body)
	if err != nil {
		return nil, err
	}

	return &service.RatingPage{
		Ratings:    transform.Ratings(envelope.Data),
		Pagination: pageFrom(envelope.Pagination),
	}, nil
}

// SubmitRating posts a new rating for a dataset.
func (c *Catalog) SubmitRating(ctx context.Context, datasetID string, rating int, comment string) (*model.DatasetRating, error) {
	submission := model.DatasetRating{Rating: rating, Comment: comment}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	body, err := c.client.Post(ctx, "/datasets/"+url.PathEscape(datasetID)+"/ratings", map[string]any{
		"rating":  rating,
		"comment": comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit rating for %s: %w", datasetID, err)
	}

	raw, err := api.DecodeResponse[transform.RawRating](body)
	if err != nil {
		return nil, err
	}

	result := transform.Rating(raw)
	return &result, nil
}

// UpdateRating replaces an existing rating.
func (c *Catalog) UpdateRating(ctx context.Context, datasetID, ratingID string, rating int, comment string) (*model.DatasetRating, error) {
	submission := model.DatasetRating{Rating: rating, Comment: comment}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	endpoint := "/datasets/" + url.PathEscape(datasetID) + "/ratings/" + url.PathEscape(ratingID)
	body, err := c.client.Put(ctx, endpoint, map[string]any{
		"rating":  rating,
		"comment": comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rating %s: %w", ratingID, err)
	}

	raw, err := api.DecodeResponse[transform.RawRating](body)
	if err != nil {
		return nil, err
	}

	result := transform.Rating(raw)
	return &result, nil
}

// DeleteRating removes a rating.
func (c *Catalog) DeleteRating(ctx context.Context, datasetID, ratingID string) error {
	endpoint := "/datasets/" + url.PathEscape(datasetID) + "/ratings/" + url.PathEscape(ratingID)
	if _, err := c.client.Delete(ctx, endpoint); err != nil {
		return fmt.Errorf("failed to delete rating %s: %w", ratingID, err)
	}
	return nil
}

// BookmarkDataset marks a dataset as a favorite on the backend.
func (c *Catalog) BookmarkDataset(ctx context.Context, datasetID string) error {
	if _, err := c.client.Post(ctx, "/datasets/"+url.PathEscape(datasetID)+"/bookmark", nil); err != nil {
		return fmt.Errorf("failed to bookmark dataset %s: %w", datasetID, err)
	}
	return nil
}

// RemoveBookmark clears a backend favorite.
func (c *Catalog) RemoveBookmark(ctx context.Context, datasetID string) error {
	if _, err := c.client.Delete(ctx, "/datasets/"+url.PathEscape(datasetID)+"/bookmark"); err != nil {
		return fmt.Errorf("failed to remove bookmark for %s: %w", datasetID, err)
	}
	return nil
}

// TrackView reports that the user opened a dataset.
func (c *Catalog) TrackView(ctx context.Context, datasetID string) error {
	if _, err := c.client.Post(ctx, "/datasets/"+url.PathEscape(datasetID)+"/view", nil); err != nil {
		return fmt.Errorf("failed to track view for %s: %w", datasetID, err)
	}
	return nil
}

// GetDownloadURL asks the backend for a short-lived download link.
func (c *Catalog) GetDownloadURL(ctx context.Context, datasetID, format string) (string, error) {
	endpoint := "/datasets/" + url.PathEscape(datasetID) + "/download-url" + api.BuildQuery(map[string]any{
		"format": format,
	})

	body, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to fetch download URL for %s: %w", datasetID, err)
	}

	result, err := api.DecodeResponse[struct {
		URL string `json:"url"`
	}](body)
	if err != nil {
		return "", err
	}

	return result.URL, nil
}

// GetCategories fetches the category facet with dataset counts.
func (c *Catalog) GetCategories(ctx context.Context) ([]model.FacetCount, error) {
	return c.facet(ctx, "/categories")
}

// GetTags fetches the most common tags with dataset counts.
func (c *Catalog) GetTags(ctx context.Context, limit int) ([]model.FacetCount, error) {
	return c.facet(ctx, "/tags"+api.BuildQuery(map[string]any{"limit": limit}))
}

func (c *Catalog) facet(ctx context.Context, endpoint string) ([]model.FacetCount, error) {
	body, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}

	raw, err := api.DecodeResponse[[]struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}](body)
	if err != nil {
		return nil, err
	}

	counts := make([]model.FacetCount, len(raw))
	for i, f := range raw {
		counts[i] = model.FacetCount{Name: f.Name, Count: f.Count}
	}
	return counts, nil
}

// SubmitAccessRequests posts the cart's access requests as one batch.
func (c *Catalog) SubmitAccessRequests(ctx context.Context, requests []model.AccessRequest) error {
	if len(requests) == 0 {
		return nil
	}

	payload := make([]map[string]any, len(requests))
	for i, r := range requests {
		payload[i] = map[string]any{
			"id":            r.ID,
			"datasetId":     r.DatasetID,
			"datasetName":   r.DatasetName,
			"requestType":   string(r.RequestType),
			"priority":      string(r.Priority),
			"justification": r.Justification,
			"submittedAt":   r.SubmittedAt,
		}
	}

	if _, err := c.client.Post(ctx, "/access-requests", map[string]any{"requests": payload}); err != nil {
		return fmt.Errorf("failed to submit access requests: %w", err)
	}
	return nil
}

func pageFrom(p api.Pagination) service.Page {
	return service.Page{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}
