package marketplace

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/search"
	"github.com/datafoundry/bazaar/internal/service"
)

// MemoryCatalog serves the catalog, directory, and profile contracts from an
// in-memory fixture set. It backs demo mode and the mock server.
type MemoryCatalog struct {
	datasets      []model.Dataset
	organizations []model.Organization
	user          model.User
	ratings       map[string][]model.DatasetRating
	bookmarks     map[string]bool
	views         map[string]time.Time
	requests      []model.AccessRequest
	now           func() time.Time
	mu            sync.Mutex
}

// NewMemoryCatalog creates a catalog over the given fixtures.
func NewMemoryCatalog(datasets []model.Dataset, organizations []model.Organization, user model.User) *MemoryCatalog {
	ratings := make(map[string][]model.DatasetRating, len(datasets))
	for _, d := range datasets {
		if len(d.Ratings) > 0 {
			ratings[d.ID] = append([]model.DatasetRating(nil), d.Ratings...)
		}
	}

	return &MemoryCatalog{
		datasets:      datasets,
		organizations: organizations,
		user:          user,
		ratings:       ratings,
		bookmarks:     make(map[string]bool),
		views:         make(map[string]time.Time),
		now:           time.Now,
	}
}

// GetDatasets runs the search pipeline over the fixture set.
func (m *MemoryCatalog) GetDatasets(ctx context.Context, query service.DatasetQuery) (*service.DatasetPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params := search.Params{
		Query:    query.Search,
		SortBy:   sortKey(query.SortBy),
		Order:    search.SortOrder(query.SortOrder),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Category != "" {
		params.Filters.Categories = []string{query.Category}
	}
	if query.OrganizationID != "" {
		params.Filters.Organizations = []string{m.organizationName(query.OrganizationID)}
	}

	result := search.Run(m.datasets, params)

	return &service.DatasetPage{
		Datasets: result.Datasets,
		Pagination: service.Page{
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalCount: result.TotalCount,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// GetDataset returns a fixture dataset by ID.
func (m *MemoryCatalog) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.findLocked(id)
}

// GetFeaturedDatasets returns the highest-quality published datasets.
func (m *MemoryCatalog) GetFeaturedDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var featured []model.Dataset
	for _, d := range m.datasets {
		if d.Maturity == model.MaturityPublished && d.Metrics.QualityScore >= 85 {
			featured = append(featured, d)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Metrics.QualityScore > featured[j].Metrics.QualityScore
	})

	return truncate(featured, limit), nil
}

// GetPopularDatasets returns datasets ordered by usage count.
func (m *MemoryCatalog) GetPopularDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	popular := append([]model.Dataset(nil), m.datasets...)
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Metrics.UsageCount > popular[j].Metrics.UsageCount
	})

	return truncate(popular, limit), nil
}

// GetRecentDatasets returns datasets ordered by update time, newest first.
func (m *MemoryCatalog) GetRecentDatasets(ctx context.Context, limit int) ([]model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := append([]model.Dataset(nil), m.datasets...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})

	return truncate(recent, limit), nil
}

// GetRelatedDatasets resolves the dataset's related references against the
// fixture set, falling back to same-domain datasets when it carries none.
func (m *MemoryCatalog) GetRelatedDatasets(ctx context.Context, datasetID string, limit int) ([]model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	origin, err := m.findLocked(datasetID)
	if err != nil {
		return nil, err
	}

	var related []model.Dataset
	if len(origin.RelatedDatasets) > 0 {
		for _, ref := range origin.RelatedDatasets {
			if d, err := m.findLocked(ref.ID); err == nil {
				related = append(related, *d)
			}
		}
	} else {
		for _, d := range m.datasets {
			if d.ID != origin.ID && d.Domain == origin.Domain {
				related = append(related, d)
			}
		}
	}

	return truncate(related, limit), nil
}

// GetPreview returns a dataset's sample rows, trimmed to the limit.
func (m *MemoryCatalog) GetPreview(ctx context.Context, datasetID string, limit int) (*model.DatasetPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.findLocked(datasetID)
	if err != nil {
		return nil, err
	}
	if d.Preview == nil {
		return nil, common.NewUserError("no preview available for this dataset", common.ErrNotFound)
	}

	preview := *d.Preview
	if limit > 0 && limit < len(preview.SampleData) {
		preview.SampleData = preview.SampleData[:limit]
	}
	return &preview, nil
}

// GetRatings returns one page of a dataset's ratings, newest first.
func (m *MemoryCatalog) GetRatings(ctx context.Context, datasetID string, page, pageSize int) (*service.RatingPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.findLocked(datasetID); err != nil {
		return nil, err
	}

	all := append([]model.DatasetRating(nil), m.ratings[datasetID]...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if pageSize <= 0 {
		pageSize = 10
	}
	totalCount := len(all)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return &service.RatingPage{
		Ratings: all[start:end],
		Pagination: service.Page{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	}, nil
}

// SubmitRating records a rating from the fixture user.
func (m *MemoryCatalog) SubmitRating(ctx context.Context, datasetID string, rating int, comment string) (*model.DatasetRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.findLocked(datasetID); err != nil {
		return nil, err
	}

	entry := model.DatasetRating{
		ID:        uuid.NewString(),
		UserID:    m.user.Username,
		UserName:  m.user.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: m.now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	m.ratings[datasetID] = append(m.ratings[datasetID], entry)
	return &entry, nil
}

// UpdateRating replaces an existing rating's score and comment.
func (m *MemoryCatalog) UpdateRating(ctx context.Context, datasetID, ratingID string, rating int, comment string) (*model.DatasetRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.ratings[datasetID] {
		if r.ID != ratingID {
			continue
		}

		updated := r
		updated.Rating = rating
		updated.Comment = comment
		if err := updated.Validate(); err != nil {
			return nil, err
		}

		m.ratings[datasetID][i] = updated
		return &updated, nil
	}

	return nil, common.NewUserError("rating not found", common.ErrNotFound)
}

// DeleteRating removes a rating.
func (m *MemoryCatalog) DeleteRating(ctx context.Context, datasetID, ratingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ratings := m.ratings[datasetID]
	for i, r := range ratings {
		if r.ID == ratingID {
			m.ratings[datasetID] = append(ratings[:i:i], ratings[i+1:]...)
			return nil
		}
	}

	return common.NewUserError("rating not found", common.ErrNotFound)
}

// BookmarkDataset marks a dataset as a favorite.
func (m *MemoryCatalog) BookmarkDataset(ctx context.Context, datasetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.findLocked(datasetID); err != nil {
		return err
	}
	m.bookmarks[datasetID] = true
	return nil
}

// RemoveBookmark clears a favorite.
func (m *MemoryCatalog) RemoveBookmark(ctx context.Context, datasetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.bookmarks, datasetID)
	return nil
}

// TrackView records a view and bumps the dataset's usage count.
func (m *MemoryCatalog) TrackView(ctx context.Context, datasetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.datasets {
		if m.datasets[i].ID == datasetID {
			m.datasets[i].Metrics.UsageCount++
			m.views[datasetID] = m.now()
			return nil
		}
	}

	return common.NewUserError("dataset not found", common.ErrNotFound)
}

// GetDownloadURL fabricates a stable download link for the fixture set.
func (m *MemoryCatalog) GetDownloadURL(ctx context.Context, datasetID, format string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.findLocked(datasetID); err != nil {
		return "", err
	}
	if format == "" {
		format = "csv"
	}

	return "https://downloads.datamarketplace.local/" + datasetID + "." + format, nil
}

// GetCategories returns the domain facet over the fixture set.
func (m *MemoryCatalog) GetCategories(ctx context.Context) ([]model.FacetCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return search.FacetCounts(m.datasets).Categories, nil
}

// GetTags returns the most common tags over the fixture set.
func (m *MemoryCatalog) GetTags(ctx context.Context, limit int) ([]model.FacetCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tags := search.FacetCounts(m.datasets).Tags
	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	return tags, nil
}

// SubmitAccessRequests records the submitted batch.
func (m *MemoryCatalog) SubmitAccessRequests(ctx context.Context, requests []model.AccessRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, requests...)
	return nil
}

// SubmittedRequests returns everything SubmitAccessRequests has recorded.
func (m *MemoryCatalog) SubmittedRequests() []model.AccessRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.AccessRequest(nil), m.requests...)
}

// GetOrganizations returns the fixture organizations.
func (m *MemoryCatalog) GetOrganizations(ctx context.Context) ([]model.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Organization(nil), m.organizations...), nil
}

// GetOrganization returns a fixture organization by ID.
func (m *MemoryCatalog) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, org := range m.organizations {
		if org.ID == id {
			found := org
			return &found, nil
		}
	}

	return nil, common.NewUserError("organization not found", common.ErrNotFound)
}

// GetOrganizationDatasets pages through an organization's datasets.
func (m *MemoryCatalog) GetOrganizationDatasets(ctx context.Context, id string, query service.DatasetQuery) (*service.DatasetPage, error) {
	if _, err := m.GetOrganization(ctx, id); err != nil {
		return nil, err
	}

	query.OrganizationID = id
	return m.GetDatasets(ctx, query)
}

// GetCurrentUser returns the fixture user.
func (m *MemoryCatalog) GetCurrentUser(ctx context.Context) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.user
	return &user, nil
}

// GetFavorites returns the bookmarked dataset IDs.
func (m *MemoryCatalog) GetFavorites(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.bookmarks))
	for id := range m.bookmarks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetRecentlyViewed returns viewed datasets, most recent first.
func (m *MemoryCatalog) GetRecentlyViewed(ctx context.Context, limit int) ([]model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type view struct {
		id string
		at time.Time
	}
	views := make([]view, 0, len(m.views))
	for id, at := range m.views {
		views = append(views, view{id: id, at: at})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].at.After(views[j].at)
	})

	var datasets []model.Dataset
	for _, v := range views {
		if d, err := m.findLocked(v.id); err == nil {
			datasets = append(datasets, *d)
		}
	}
	return truncate(datasets, limit), nil
}

func (m *MemoryCatalog) findLocked(id string) (*model.Dataset, error) {
	for i := range m.datasets {
		if m.datasets[i].ID == id {
			found := m.datasets[i]
			return &found, nil
		}
	}
	return nil, common.NewUserError("dataset not found", common.ErrNotFound)
}

func (m *MemoryCatalog) organizationName(id string) string {
	for _, org := range m.organizations {
		if org.ID == id {
			return org.Name
		}
	}
	return id
}

func sortKey(raw string) search.SortKey {
	switch strings.ToLower(raw) {
	case "name":
		return search.SortName
	case "updated", "updatedat", "lastupdated":
		return search.SortUpdated
	case "quality", "qualityscore":
		return search.SortQuality
	case "usage", "popularity":
		return search.SortUsage
	default:
		return search.SortRelevance
	}
}

func truncate(datasets []model.Dataset, limit int) []model.Dataset {
	if limit > 0 && limit < len(datasets) {
		return datasets[:limit]
	}
	return datasets
}
