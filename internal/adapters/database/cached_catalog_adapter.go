package database

import (
	"context"
	"encoding/json"
	"log"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/providers"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
)

const catalogSnapshotKey = "catalog:snapshot"

// CachedCatalogAdapter wraps a CatalogRepository with Redis caching so
// diagnosis requests do not hit the database on every call. Invalidate is
// driven by catalog reload events rather than writes, since the catalog is
// read-only at serving time.
type CachedCatalogAdapter struct {
	adapter    repositories.CatalogRepository
	cache      providers.CacheProvider
	ttlSeconds int
}

// NewCachedCatalogAdapter creates a new cached catalog adapter
func NewCachedCatalogAdapter(adapter repositories.CatalogRepository, cache providers.CacheProvider, ttlSeconds int) *CachedCatalogAdapter {
	return &CachedCatalogAdapter{
		adapter:    adapter,
		cache:      cache,
		ttlSeconds: ttlSeconds,
	}
}

// Snapshot returns the catalog, serving from cache when possible
func (a *CachedCatalogAdapter) Snapshot(ctx context.Context) (*entities.Catalog, error) {
	if cached, err := a.cache.Get(ctx, catalogSnapshotKey); err == nil {
		var catalog entities.Catalog
		if err := json.Unmarshal(cached, &catalog); err == nil {
			return &catalog, nil
		}
		// If unmarshal fails, continue to fetch from DB
		log.Printf("Failed to unmarshal cached catalog snapshot: %v", err)
	}

	catalog, err := a.adapter.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(catalog); err == nil {
			if err := a.cache.Set(bgCtx, catalogSnapshotKey, data, a.ttlSeconds); err != nil {
				log.Printf("Failed to cache catalog snapshot: %v", err)
			}
		}
	}()

	return catalog, nil
}

// Invalidate drops the cached snapshot so the next Snapshot call reloads
// from the database.
func (a *CachedCatalogAdapter) Invalidate(ctx context.Context) error {
	return a.cache.Delete(ctx, catalogSnapshotKey)
}
