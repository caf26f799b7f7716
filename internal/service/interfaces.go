// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/datafoundry/bazaar/internal/model"
)

// DatasetQuery defines listing options for dataset queries.
type DatasetQuery struct {
	Search         string
	Category       string
	OrganizationID string
	SortBy         string
	SortOrder      string
	Page           int
	PageSize       int
}

// Page describes the pagination block returned with collection responses.
type Page struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// DatasetPage is one page of datasets plus its pagination metadata.
type DatasetPage struct {
	Datasets   []model.Dataset
	Pagination Page
}

// RatingPage is one page of ratings plus its pagination metadata.
type RatingPage struct {
	Ratings    []model.DatasetRating
	Pagination Page
}

// DatasetCatalog is the contract for browsing and mutating the dataset
// catalog. Two implementations exist: one backed by the marketplace HTTP API
// and one backed by in-memory fixtures, selected at composition time.
type DatasetCatalog interface {
	// Listing and retrieval
	GetDatasets(ctx context.Context, query DatasetQuery) (*DatasetPage, error)
	GetDataset(ctx context.Context, id string) (*model.Dataset, error)
	GetFeaturedDatasets(ctx context.Context, limit int) ([]model.Dataset, error)
	GetPopularDatasets(ctx context.Context, limit int) ([]model.Dataset, error)
	GetRecentDatasets(ctx context.Context, limit int) ([]model.Dataset, error)
	GetRelatedDatasets(ctx context.Context, datasetID string, limit int) ([]model.Dataset, error)
	GetPreview(ctx context.Context, datasetID string, limit int) (*model.DatasetPreview, error)

	// Ratings
	GetRatings(ctx context.Context, datasetID string, page, pageSize int) (*RatingPage, error)
	SubmitRating(ctx context.Context, datasetID string, rating int, comment string) (*model.DatasetRating, error)
	UpdateRating(ctx context.Context, datasetID, ratingID string, rating int, comment string) (*model.DatasetRating, error)
	DeleteRating(ctx context.Context, datasetID, ratingID string) error

	// Bookmarks and views
	BookmarkDataset(ctx context.Context, datasetID string) error
	RemoveBookmark(ctx context.Context, datasetID string) error
	TrackView(ctx context.Context, datasetID string) error

	// Downloads
	GetDownloadURL(ctx context.Context, datasetID, format string) (string, error)

	// Facet sources
	GetCategories(ctx context.Context) ([]model.FacetCount, error)
	GetTags(ctx context.Context, limit int) ([]model.FacetCount, error)

	// Access requests
	SubmitAccessRequests(ctx context.Context, requests []model.AccessRequest) error
}

// OrganizationDirectory is the contract for the organization endpoints.
type OrganizationDirectory interface {
	GetOrganizations(ctx context.Context) ([]model.Organization, error)
	GetOrganization(ctx context.Context, id string) (*model.Organization, error)
	GetOrganizationDatasets(ctx context.Context, id string, query DatasetQuery) (*DatasetPage, error)
}

// UserProfile is the contract for the current user's endpoints.
type UserProfile interface {
	GetCurrentUser(ctx context.Context) (*model.User, error)
	GetFavorites(ctx context.Context) ([]string, error)
	GetRecentlyViewed(ctx context.Context, limit int) ([]model.Dataset, error)
}

// KeyValueStore abstracts the durable local store used for session state and
// bookmarks, so the storage medium is swappable without touching call sites.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BookmarkStore persists the user's bookmarked dataset IDs locally.
type BookmarkStore interface {
	AddBookmark(ctx context.Context, datasetID string) error
	RemoveBookmark(ctx context.Context, datasetID string) error
	ListBookmarks(ctx context.Context) ([]string, error)
	IsBookmarked(ctx context.Context, datasetID string) (bool, error)
}

// ViewStore records which datasets the user opened recently.
type ViewStore interface {
	RecordView(ctx context.Context, datasetID string, at time.Time) error
	RecentViews(ctx context.Context, limit int) ([]model.RecentView, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
