package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// DiseaseAdapter implements DiseaseRepository
type DiseaseAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiseaseAdapter creates a new disease adapter
func NewDiseaseAdapter(client *postgres.Client) repositories.DiseaseRepository {
	return &DiseaseAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all diseases with their symptom counts, ordered by name
func (a *DiseaseAdapter) List(ctx context.Context) ([]*entities.Disease, error) {
	query, args, err := a.db.Select(
		goqu.I("d.id"),
		goqu.I("d.name"),
		goqu.I("d.description"),
		goqu.COUNT(goqu.I("ds.symptom_id")).As("symptom_count"),
	).From(goqu.T("diseases").As("d")).
		LeftJoin(
			goqu.T("disease_symptoms").As("ds"),
			goqu.On(goqu.I("d.id").Eq(goqu.I("ds.disease_id"))),
		).
		GroupBy(goqu.I("d.id"), goqu.I("d.name"), goqu.I("d.description")).
		Order(goqu.I("d.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build diseases query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query diseases", err)
	}
	defer rows.Close()

	diseases := []*entities.Disease{}
	for rows.Next() {
		disease := &entities.Disease{}
		var description sql.NullString
		if err := rows.Scan(&disease.ID, &disease.Name, &description, &disease.SymptomCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan disease", err)
		}
		disease.Description = description.String
		diseases = append(diseases, disease)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating diseases", err)
	}

	return diseases, nil
}

// GetByID retrieves one disease with its full symptom profile and ordered
// recommendations
func (a *DiseaseAdapter) GetByID(ctx context.Context, id int) (*entities.DiseaseDetail, error) {
	query, args, err := a.db.Select("id", "name", "description").
		From("diseases").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build disease query", err)
	}

	detail := &entities.DiseaseDetail{}
	var description sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&detail.ID, &detail.Name, &description)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("disease with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get disease", err)
	}
	detail.Description = description.String

	symptoms, err := a.profileSymptoms(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Symptoms = symptoms
	detail.SymptomCount = len(symptoms)

	recommendations, err := a.recommendations(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Recommendations = recommendations

	return detail, nil
}

func (a *DiseaseAdapter) profileSymptoms(ctx context.Context, diseaseID int) ([]*entities.Symptom, error) {
	query, args, err := a.db.Select(
		goqu.I("s.id"),
		goqu.I("s.name"),
		goqu.I("s.severity_weight"),
	).From(goqu.T("symptoms").As("s")).
		InnerJoin(
			goqu.T("disease_symptoms").As("ds"),
			goqu.On(goqu.I("s.id").Eq(goqu.I("ds.symptom_id"))),
		).
		Where(goqu.I("ds.disease_id").Eq(diseaseID)).
		Order(goqu.I("s.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build profile query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query disease profile", err)
	}
	defer rows.Close()

	symptoms := []*entities.Symptom{}
	for rows.Next() {
		symptom := &entities.Symptom{}
		if err := rows.Scan(&symptom.ID, &symptom.Name, &symptom.SeverityWeight); err != nil {
			return nil, apperrors.NewInternalError("failed to scan profile symptom", err)
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating profile symptoms", err)
	}

	return symptoms, nil
}

func (a *DiseaseAdapter) recommendations(ctx context.Context, diseaseID int) ([]*entities.Recommendation, error) {
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
