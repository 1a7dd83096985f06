package repositories

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// SymptomRepository defines the interface for symptom data operations
type SymptomRepository interface {
	// List retrieves all symptoms ordered by name
	List(ctx context.Context) ([]*entities.Symptom, error)

	// Search retrieves symptoms whose name contains the query,
	// case-insensitively, ordered by name
	Search(ctx context.Context, query string, limit int) ([]*entities.Symptom, error)
}

// SymptomSearchRepository defines the interface for the symptom autocomplete
// index. It serves the browse endpoint only; diagnosis resolution always uses
// exact catalog names.
type SymptomSearchRepository interface {
	// InitSchema ensures the symptoms collection exists
	InitSchema(ctx context.Context) error

	// IndexSymptoms upserts symptoms into the index
	IndexSymptoms(ctx context.Context, symptoms []*entities.Symptom) error

	// Search performs a typo-tolerant prefix search over symptom names
	Search(ctx context.Context, query string, limit int) ([]*entities.Symptom, error)
}
