// Package mockapi serves the marketplace HTTP contract from fixtures, so the
// client can be exercised end to end without a real backend.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/datafoundry/bazaar/internal/api"
	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/marketplace"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
)

// Server exposes a fixture-backed marketplace API.
type Server struct {
	catalog *marketplace.MemoryCatalog
	router  chi.Router
}

// NewServer builds the mock server over the given fixture catalog.
func NewServer(catalog *marketplace.MemoryCatalog) *Server {
	s := &Server{catalog: catalog}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", s.listDatasets)
		r.Get("/featured", s.collection(s.catalog.GetFeaturedDatasets))
		r.Get("/popular", s.collection(s.catalog.GetPopularDatasets))
		r.Get("/recent", s.collection(s.catalog.GetRecentDatasets))

		r.Route("/{datasetID}", func(r chi.Router) {
			r.Get("/", s.getDataset)
			r.Get("/related", s.getRelated)
			r.Get("/preview", s.getPreview)
			r.Get("/ratings", s.listRatings)
			r.Post("/ratings", s.submitRating)
			r.Put("/ratings/{ratingID}", s.updateRating)
			r.Delete("/ratings/{ratingID}", s.deleteRating)
			r.Post("/bookmark", s.addBookmark)
			r.Delete("/bookmark", s.removeBookmark)
			r.Post("/view", s.trackView)
			r.Get("/download-url", s.downloadURL)
		})
	})

	r.Get("/categories", s.listCategories)
	r.Get("/tags", s.listTags)
	r.Post("/access-requests", s.submitAccessRequests)

	r.Route("/organizations", func(r chi.Router) {
		r.Get("/", s.listOrganizations)
		r.Get("/{orgID}", s.getOrganization)
		r.Get("/{orgID}/datasets", s.listOrganizationDatasets)
	})

	r.Route("/users/me", func(r chi.Router) {
		r.Get("/", s.currentUser)
		r.Get("/favorites", s.favorites)
		r.Get("/recently-viewed", s.recentlyViewed)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server on the given address until it fails.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("Mock marketplace API listening", "addr", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.DatasetQuery{
		Search:         q.Get("search"),
		Category:       q.Get("category"),
		OrganizationID: q.Get("organizationId"),
		SortBy:         q.Get("sortBy"),
		SortOrder:      q.Get("sortOrder"),
		Page:           intParam(q.Get("page"), 1),
		PageSize:       intParam(q.Get("pageSize"), 20),
	}

	page, err := s.catalog.GetDatasets(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writePaginated(w, wireDatasets(page.Datasets), page.Pagination)
}

func (s *Server) getDataset(w http.ResponseWriter, r *http.Request) {
	dataset, err := s.catalog.GetDataset(r.Context(), chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireDataset(*dataset))
}

func (s *Server) collection(fetch func(ctx context.Context, limit int) ([]model.Dataset, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasets, err := fetch(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeData(w, wireDatasets(datasets))
	}
}

func (s *Server) getRelated(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.catalog.GetRelatedDatasets(r.Context(),
		chi.URLParam(r, "datasetID"),
		intParam(r.URL.Query().Get("limit"), 5))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireDatasets(datasets))
}

func (s *Server) getPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := s.catalog.GetPreview(r.Context(),
		chi.URLParam(r, "datasetID"),
		intParam(r.URL.Query().Get("limit"), 10))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wirePreviewPtr(*preview))
}

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.catalog.GetRatings(r.Context(),
		chi.URLParam(r, "datasetID"),
		intParam(q.Get("page"), 1),
		intParam(q.Get("pageSize"), 10))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePaginated(w, wireRatings(page.Ratings), page.Pagination)
}

type ratingPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) submitRating(w http.ResponseWriter, r *http.Request) {
	var payload ratingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, common.NewUserError("invalid rating payload", common.ErrInvalidRequest))
		return
	}

	rating, err := s.catalog.SubmitRating(r.Context(), chi.URLParam(r, "datasetID"), payload.Rating, payload.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireRating(*rating))
}

func (s *Server) updateRating(w http.ResponseWriter, r *http.Request) {
	var payload ratingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, common.NewUserError("invalid rating payload", common.ErrInvalidRequest))
		return
	}

	rating, err := s.catalog.UpdateRating(r.Context(),
		chi.URLParam(r, "datasetID"), chi.URLParam(r, "ratingID"),
		payload.Rating, payload.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireRating(*rating))
}

func (s *Server) deleteRating(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.DeleteRating(r.Context(), chi.URLParam(r, "datasetID"), chi.URLParam(r, "ratingID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, nil)
}

func (s *Server) addBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.BookmarkDataset(r.Context(), chi.URLParam(r, "datasetID")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, nil)
}

func (s *Server) removeBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.RemoveBookmark(r.Context(), chi.URLParam(r, "datasetID")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, nil)
}

func (s *Server) trackView(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.TrackView(r.Context(), chi.URLParam(r, "datasetID")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, nil)
}

func (s *Server) downloadURL(w http.ResponseWriter, r *http.Request) {
	u, err := s.catalog.GetDownloadURL(r.Context(),
		chi.URLParam(r, "datasetID"),
		r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]string{"url": u})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.GetCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, facetPayload(categories))
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.GetTags(r.Context(), intParam(r.URL.Query().Get("limit"), 20))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, facetPayload(tags))
}

func (s *Server) submitAccessRequests(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Requests []model.AccessRequest `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, common.NewUserError("invalid access request payload", common.ErrInvalidRequest))
		return
	}

	if err := s.catalog.SubmitAccessRequests(r.Context(), payload.Requests); err != nil {
		s.writeError(w, err)
		return
	}

	slog.Info("Access requests received", "count", len(payload.Requests))
	s.writeData(w, nil)
}

func (s *Server) listOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.catalog.GetOrganizations(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireOrganizations(orgs))
}

func (s *Server) getOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := s.catalog.GetOrganization(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireOrganization(*org))
}

func (s *Server) listOrganizationDatasets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.catalog.GetOrganizationDatasets(r.Context(), chi.URLParam(r, "orgID"), service.DatasetQuery{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      intParam(q.Get("page"), 1),
		PageSize:  intParam(q.Get("pageSize"), 20),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePaginated(w, wireDatasets(page.Datasets), page.Pagination)
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.catalog.GetCurrentUser(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]string{
		"username": user.Username,
		"name":     user.Name,
		"email":    user.Email,
		"role":     string(user.Role),
	})
}

func (s *Server) favorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.catalog.GetFavorites(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, favorites)
}

func (s *Server) recentlyViewed(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.catalog.GetRecentlyViewed(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, wireDatasets(datasets))
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writePaginated(w http.ResponseWriter, data any, page service.Page) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"pagination": api.Pagination{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalCount: page.TotalCount,
			TotalPages: page.TotalPages,
		},
	}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidRequest):
		status = http.StatusBadRequest
	}

	message := err.Error()
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		message = userErr.UserMessage
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

func facetPayload(counts []model.FacetCount) []map[string]any {
	payload := make([]map[string]any, len(counts))
	for i, c := range counts {
		payload[i] = map[string]any{"name": c.Name, "count": c.Count}
	}
	return payload
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
