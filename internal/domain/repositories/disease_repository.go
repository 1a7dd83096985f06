package repositories

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// DiseaseRepository defines the interface for disease data operations
type DiseaseRepository interface {
	// List retrieves all diseases with their symptom counts, ordered by name
	List(ctx context.Context) ([]*entities.Disease, error)

	// GetByID retrieves one disease with its full symptom profile and
	// ordered recommendations
	GetByID(ctx context.Context, id int) (*entities.DiseaseDetail, error)
}

// RecommendationRepository defines the interface for recommendation lookups
type RecommendationRepository interface {
	// ListByDisease retrieves a disease's recommendations ascending by
	// precaution order. A disease with none yields an empty slice.
	ListByDisease(ctx context.Context, diseaseID int) ([]*entities.Recommendation, error)
}
