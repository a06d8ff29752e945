package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/hongminglow/varadhi-be/internal/http/respond"
	"github.com/hongminglow/varadhi-be/internal/models"
)

// Catalog is the listing query surface the handler depends on.
type Catalog interface {
	Categories(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]models.Listing, error)
	ByCategory(ctx context.Context, category string) ([]models.Listing, error)
	Search(ctx context.Context, term string) ([]models.Listing, error)
}

// CatalogHandler owns the read-only /api/services routes.
type CatalogHandler struct {
	catalog Catalog
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Register attaches catalog routes to the router.
func (h *CatalogHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/services/distinct", h.handleDistinct).Methods(http.MethodGet)
	r.HandleFunc("/api/services/search", h.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/services/category/{categoryName}", h.handleByCategory).Methods(http.MethodGet)
	r.HandleFunc("/api/services", h.handleAll).Methods(http.MethodGet)
}

func (h *CatalogHandler) handleDistinct(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) handleAll(w http.ResponseWriter, r *http.Request) {
	listings, err := h.catalog.All(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, listings)
}

func (h *CatalogHandler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["categoryName"]
	// The router matches on the encoded path so that %2F stays inside the segment.
	if decoded, err := url.PathUnescape(category); err == nil {
		category = decoded
	}
	listings, err := h.catalog.ByCategory(r.Context(), category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, listings)
}

func (h *CatalogHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	listings, err := h.catalog.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, listings)
}
