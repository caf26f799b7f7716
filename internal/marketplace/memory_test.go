package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
)

func TestMemoryCatalogGetDatasets(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	t.Run("default query returns first page", func(t *testing.T) {
		page, err := catalog.GetDatasets(ctx, service.DatasetQuery{PageSize: 5})
		require.NoError(t, err)
		assert.Len(t, page.Datasets, 5)
		assert.Equal(t, 12, page.Pagination.TotalCount)
		assert.Equal(t, 3, page.Pagination.TotalPages)
	})

	t.Run("pages reconstruct the full collection", func(t *testing.T) {
		seen := make(map[string]bool)
		for p := 1; p <= 3; p++ {
			page, err := catalog.GetDatasets(ctx, service.DatasetQuery{Page: p, PageSize: 5})
			require.NoError(t, err)
			for _, d := range page.Datasets {
				assert.False(t, seen[d.ID], "dataset %s appeared twice", d.ID)
				seen[d.ID] = true
			}
		}
		assert.Len(t, seen, 12)
	})

	t.Run("search narrows results", func(t *testing.T) {
		page, err := catalog.GetDatasets(ctx, service.DatasetQuery{Search: "fraud"})
		require.NoError(t, err)
		require.Len(t, page.Datasets, 1)
		assert.Equal(t, "Fraud Alerts", page.Datasets[0].Name)
	})

	t.Run("category filter applies", func(t *testing.T) {
		page, err := catalog.GetDatasets(ctx, service.DatasetQuery{Category: "Risk"})
		require.NoError(t, err)
		require.NotEmpty(t, page.Datasets)
		for _, d := range page.Datasets {
			assert.Equal(t, "Risk", d.Domain)
		}
	})

	t.Run("quality sort descends", func(t *testing.T) {
		page, err := catalog.GetDatasets(ctx, service.DatasetQuery{SortBy: "quality", SortOrder: "desc", PageSize: 12})
		require.NoError(t, err)
		require.NotEmpty(t, page.Datasets)
		for i := 1; i < len(page.Datasets); i++ {
			assert.GreaterOrEqual(t,
				page.Datasets[i-1].Metrics.QualityScore,
				page.Datasets[i].Metrics.QualityScore)
		}
	})
}

func TestMemoryCatalogCollections(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	t.Run("featured are published and high quality", func(t *testing.T) {
		featured, err := catalog.GetFeaturedDatasets(ctx, 4)
		require.NoError(t, err)
		require.NotEmpty(t, featured)
		assert.LessOrEqual(t, len(featured), 4)
		for _, d := range featured {
			assert.Equal(t, model.MaturityPublished, d.Maturity)
			assert.GreaterOrEqual(t, d.Metrics.QualityScore, 85)
		}
	})

	t.Run("popular ordered by usage", func(t *testing.T) {
		popular, err := catalog.GetPopularDatasets(ctx, 3)
		require.NoError(t, err)
		require.Len(t, popular, 3)
		assert.Equal(t, "Transaction History", popular[0].Name)
	})

	t.Run("recent ordered by update time", func(t *testing.T) {
		recent, err := catalog.GetRecentDatasets(ctx, 12)
		require.NoError(t, err)
		for i := 1; i < len(recent); i++ {
			assert.False(t, recent[i-1].UpdatedAt.Before(recent[i].UpdatedAt))
		}
	})

	t.Run("related resolves references", func(t *testing.T) {
		related, err := catalog.GetRelatedDatasets(ctx, "ds-001", 5)
		require.NoError(t, err)
		require.Len(t, related, 2)
		assert.Equal(t, "ds-002", related[0].ID)
	})

	t.Run("related falls back to same domain", func(t *testing.T) {
		related, err := catalog.GetRelatedDatasets(ctx, "ds-004", 5)
		require.NoError(t, err)
		require.NotEmpty(t, related)
		for _, d := range related {
			assert.Equal(t, "Risk", d.Domain)
			assert.NotEqual(t, "ds-004", d.ID)
		}
	})
}

func TestMemoryCatalogRatings(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	t.Run("seeded ratings come back newest first", func(t *testing.T) {
		page, err := catalog.GetRatings(ctx, "ds-002", 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Ratings, 2)
		assert.Equal(t, "rt-002", page.Ratings[0].ID)
	})

	t.Run("submit validates", func(t *testing.T) {
		_, err := catalog.SubmitRating(ctx, "ds-001", 6, "a perfectly fine comment")
		assert.Error(t, err)

		_, err = catalog.SubmitRating(ctx, "ds-001", 4, "too short")
		assert.Error(t, err)
	})

	t.Run("submit then update then delete", func(t *testing.T) {
		rating, err := catalog.SubmitRating(ctx, "ds-001", 4, "useful dataset, well documented")
		require.NoError(t, err)
		require.NotEmpty(t, rating.ID)

		updated, err := catalog.UpdateRating(ctx, "ds-001", rating.ID, 5, "even better after the latest refresh")
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)

		require.NoError(t, catalog.DeleteRating(ctx, "ds-001", rating.ID))
		err = catalog.DeleteRating(ctx, "ds-001", rating.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestMemoryCatalogBookmarksAndViews(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	require.NoError(t, catalog.BookmarkDataset(ctx, "ds-003"))
	require.NoError(t, catalog.BookmarkDataset(ctx, "ds-001"))

	favorites, err := catalog.GetFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ds-001", "ds-003"}, favorites)

	require.NoError(t, catalog.RemoveBookmark(ctx, "ds-003"))
	favorites, err = catalog.GetFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ds-001"}, favorites)

	t.Run("views feed recently viewed", func(t *testing.T) {
		base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
		times := []time.Time{base, base.Add(time.Minute)}
		catalog.now = func() time.Time {
			next := times[0]
			if len(times) > 1 {
				times = times[1:]
			}
			return next
		}

		require.NoError(t, catalog.TrackView(ctx, "ds-005"))
		require.NoError(t, catalog.TrackView(ctx, "ds-006"))

		viewed, err := catalog.GetRecentlyViewed(ctx, 10)
		require.NoError(t, err)
		require.Len(t, viewed, 2)
		assert.Equal(t, "ds-006", viewed[0].ID)
	})

	t.Run("view bumps usage", func(t *testing.T) {
		before, err := catalog.GetDataset(ctx, "ds-007")
		require.NoError(t, err)

		require.NoError(t, catalog.TrackView(ctx, "ds-007"))

		after, err := catalog.GetDataset(ctx, "ds-007")
		require.NoError(t, err)
		assert.Equal(t, before.Metrics.UsageCount+1, after.Metrics.UsageCount)
	})
}

func TestMemoryCatalogOrganizations(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	orgs, err := catalog.GetOrganizations(ctx)
	require.NoError(t, err)
	assert.Len(t, orgs, 5)

	org, err := catalog.GetOrganization(ctx, "org-risk")
	require.NoError(t, err)
	assert.Equal(t, "Risk & Compliance", org.Name)
	assert.Equal(t, len(org.DatasetIDs), org.Metrics.DatasetCount)

	page, err := catalog.GetOrganizationDatasets(ctx, "org-risk", service.DatasetQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Datasets)
	for _, d := range page.Datasets {
		assert.Equal(t, "Risk & Compliance", d.BusinessLine)
	}

	_, err = catalog.GetOrganization(ctx, "org-nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryCatalogAccessRequests(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	requests := []model.AccessRequest{
		{ID: "req-1", DatasetID: "ds-001", RequestType: model.RequestAccess, Priority: model.PriorityStandard},
		{ID: "req-2", DatasetID: "ds-002", RequestType: model.RequestDownload, Priority: model.PriorityUrgent},
	}

	require.NoError(t, catalog.SubmitAccessRequests(ctx, requests))
	assert.Len(t, catalog.SubmittedRequests(), 2)
}

func TestMemoryCatalogNotFound(t *testing.T) {
	catalog := NewFixtureCatalog()
	ctx := context.Background()

	_, err := catalog.GetDataset(ctx, "ds-999")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = catalog.GetPreview(ctx, "ds-002", 5)
	assert.ErrorIs(t, err, common.ErrNotFound)

	preview, err := catalog.GetPreview(ctx, "ds-001", 2)
	require.NoError(t, err)
	assert.Len(t, preview.SampleData, 2)
}
