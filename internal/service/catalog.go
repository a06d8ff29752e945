package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/storage"
)

// Catalog serves read-only queries over the directory listings.
type Catalog struct {
	store storage.ListingStore
	log   *zap.Logger
}

// NewCatalog constructs the catalog over store.
func NewCatalog(store storage.ListingStore, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{store: store, log: log}
}

// Categories returns the distinct service categories in ascending order.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	out, err := c.store.DistinctServices(ctx)
	if err != nil {
		c.log.Error("fetch distinct services", zap.Error(err))
		return nil, storeFailure("failed to fetch distinct services", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// All returns every listing in store order.
func (c *Catalog) All(ctx context.Context) ([]models.Listing, error) {
	out, err := c.store.ListAll(ctx)
	if err != nil {
		c.log.Error("fetch all services", zap.Error(err))
		return nil, storeFailure("failed to fetch all services", err)
	}
	return nonNil(out), nil
}

// ByCategory returns the listings whose service equals category exactly.
// An unknown category yields an empty result.
func (c *Catalog) ByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	out, err := c.store.ListByService(ctx, category)
	if err != nil {
		c.log.Error("fetch services by category", zap.String("category", category), zap.Error(err))
		return nil, storeFailure("failed to fetch services by category", err)
	}
	return nonNil(out), nil
}

// Search matches term case-insensitively against every listing field.
func (c *Catalog) Search(ctx context.Context, term string) ([]models.Listing, error) {
	if strings.TrimSpace(term) == "" {
		return nil, validation("search query parameter is missing")
	}
	out, err := c.store.Search(ctx, term)
	if err != nil {
		c.log.Error("search services", zap.String("query", term), zap.Error(err))
		return nil, storeFailure("failed to perform search", err)
	}
	return nonNil(out), nil
}

func nonNil(in []models.Listing) []models.Listing {
	if in == nil {
		return []models.Listing{}
	}
	return in
}
