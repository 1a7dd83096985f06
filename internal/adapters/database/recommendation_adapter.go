package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// RecommendationAdapter implements RecommendationRepository
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecommendationAdapter creates a new recommendation adapter
func NewRecommendationAdapter(client *postgres.Client) repositories.RecommendationRepository {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByDisease retrieves a disease's recommendations ascending by precaution
// order
func (a *RecommendationAdapter) ListByDisease(ctx context.Context, diseaseID int) ([]*entities.Recommendation, error) {
	query, args, err := a.db.Select("id", "disease_id", "recommendation_text", "precaution_order").
		From("recommendations").
		Where(goqu.Ex{"disease_id": diseaseID}).
		Order(goqu.I("precaution_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recommendations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query recommendations", err)
	}
	defer rows.Close()

	recommendations := []*entities.Recommendation{}
	for rows.Next() {
		rec := &entities.Recommendation{}
		if err := rows.Scan(&rec.ID, &rec.DiseaseID, &rec.Text, &rec.Order); err != nil {
			return nil, apperrors.NewInternalError("failed to scan recommendation", err)
		}
		recommendations = append(recommendations, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating recommendations", err)
	}

	return recommendations, nil
}
