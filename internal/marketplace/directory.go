package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/datafoundry/bazaar/internal/api"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
	"github.com/datafoundry/bazaar/internal/transform"
)

// rawOrganization is the wire form of an organization.
type rawOrganization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	DatasetIDs  []string  `json:"datasetIds"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	Metrics     struct {
		DatasetCount         int     `json:"datasetCount"`
		AverageDatasetRating float64 `json:"averageDatasetRating"`
		ActiveUsers          int     `json:"activeUsers"`
	} `json:"metrics"`
}

func (r rawOrganization) toModel() model.Organization {
	return model.Organization{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		DatasetIDs:  r.DatasetIDs,
		Verified:    r.Verified,
		CreatedAt:   r.CreatedAt,
		Metrics: model.OrganizationMetrics{
			DatasetCount:         r.Metrics.DatasetCount,
			AverageDatasetRating: r.Metrics.AverageDatasetRating,
			ActiveUsers:          r.Metrics.ActiveUsers,
		},
	}
}

// Directory implements service.OrganizationDirectory against the marketplace
// HTTP API.
type Directory struct {
	client *api.Client
}

// NewDirectory creates an HTTP-backed organization directory.
func NewDirectory(client *api.Client) *Directory {
	return &Directory{client: client}
}

// GetOrganizations fetches all publishing organizations.
func (d *Directory) GetOrganizations(ctx context.Context) ([]model.Organization, error) {
	body, err := d.client.Get(ctx, "/organizations")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizations: %w", err)
	}

	raw, err := api.DecodeResponse[[]rawOrganization](body)
	if err != nil {
		return nil, err
	}

	orgs := make([]model.Organization, len(raw))
	for i, r := range raw {
		orgs[i] = r.toModel()
	}
	return orgs, nil
}

// GetOrganization fetches a single organization by ID.
func (d *Directory) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	body, err := d.client.Get(ctx, "/organizations/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization %s: %w", id, err)
	}

	raw, err := api.DecodeResponse[rawOrganization](body)
	if err != nil {
		return nil, err
	}

	org := raw.toModel()
	return &org, nil
}

// GetOrganizationDatasets fetches one page of an organization's datasets.
func (d *Directory) GetOrganizationDatasets(ctx context.Context, id string, query service.DatasetQuery) (*service.DatasetPage, error) {
	endpoint := "/organizations/" + url.PathEscape(id) + "/datasets" + api.BuildQuery(map[string]any{
		"search":    query.Search,
		"sortBy":    query.SortBy,
		"sortOrder": query.SortOrder,
		"page":      query.Page,
		"pageSize":  query.PageSize,
	})

	body, err := d.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch datasets for organization %s: %w", id, err)
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

// Profile implements service.UserProfile against the marketplace HTTP API.
type Profile struct {
	client *api.Client
}

// NewProfile creates an HTTP-backed user profile service.
func NewProfile(client *api.Client) *Profile {
	return &Profile{client: client}
}

// GetCurrentUser fetches the authenticated user's profile.
func (p *Profile) GetCurrentUser(ctx context.Context) (*model.User, error) {
	body, err := p.client.Get(ctx, "/users/me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	raw, err := api.DecodeResponse[struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}](body)
	if err != nil {
		return nil, err
	}

	return &model.User{
		Username: raw.Username,
		Name:     raw.Name,
		Email:    raw.Email,
		Role:     model.UserRole(raw.Role),
	}, nil
}

// GetFavorites fetches the user's favorite dataset IDs.
func (p *Profile) GetFavorites(ctx context.Context) ([]string, error) {
	body, err := p.client.Get(ctx, "/users/me/favorites")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return api.DecodeResponse[[]string](body)
}

// GetRecentlyViewed fetches the datasets the user opened recently.
func (p *Profile) GetRecentlyViewed(ctx context.Context, limit int) ([]model.Dataset, error) {
	endpoint := "/users/me/recently-viewed" + api.BuildQuery(map[string]any{"limit": limit})

	body, err := p.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recently viewed: %w", err)
	}

	raw, err := api.DecodeResponse[[]transform.RawDataset](body)
	if err != nil {
		return nil, err
	}

	return transform.Datasets(raw), nil
}
