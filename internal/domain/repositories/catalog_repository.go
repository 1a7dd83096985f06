package repositories

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// CatalogRepository supplies the matching engine with catalog snapshots.
type CatalogRepository interface {
	// Snapshot returns the fully materialized catalog: all symptoms, all
	// disease profiles and all recommendations, reflecting a single
	// consistent point in time. Implementations batch the reads; the engine
	// never issues per-disease queries during scoring.
	Snapshot(ctx context.Context) (*entities.Catalog, error)
}
