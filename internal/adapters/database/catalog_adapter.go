package database

import (
	"context"
	"database/sql"
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// CatalogAdapter implements CatalogRepository. It materializes the whole
// catalog in four batched queries inside one read-only repeatable-read
// transaction, so a snapshot always reflects a single point in time.
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogRepository {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Snapshot returns the fully materialized catalog
func (a *CatalogAdapter) Snapshot(ctx context.Context) (*entities.Catalog, error) {
	tx, err := a.client.DB().BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to begin catalog read", err)
	}
	defer tx.Rollback()

	symptoms, err := a.loadSymptoms(ctx, tx)
	if err != nil {
		return nil, err
	}

	diseases, err := a.loadDiseases(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := a.loadProfiles(ctx, tx, diseases); err != nil {
		return nil, err
	}

	recommendations, err := a.loadRecommendations(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewUnavailableError("failed to finish catalog read", err)
	}

	profiles := make([]*entities.DiseaseProfile, 0, len(diseases))
	for _, d := range diseases {
		profiles = append(profiles, d)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })

	return &entities.Catalog{
		Symptoms:        symptoms,
		Diseases:        profiles,
		Recommendations: recommendations,
	}, nil
}

func (a *CatalogAdapter) loadSymptoms(ctx context.Context, tx *sql.Tx) ([]*entities.Symptom, error) {
	query, args, err := a.db.Select("id", "name", "severity_weight").
		From("symptoms").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog symptoms query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load catalog symptoms", err)
	}
	defer rows.Close()

	symptoms := []*entities.Symptom{}
	for rows.Next() {
		symptom := &entities.Symptom{}
		if err := rows.Scan(&symptom.ID, &symptom.Name, &symptom.SeverityWeight); err != nil {
			return nil, apperrors.NewInternalError("failed to scan catalog symptom", err)
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating catalog symptoms", err)
	}

	return symptoms, nil
}

// loadDiseases returns profiles keyed by disease id in insertion order, with
// empty symptom id sets; loadProfiles fills them in.
func (a *CatalogAdapter) loadDiseases(ctx context.Context, tx *sql.Tx) (map[int]*entities.DiseaseProfile, error) {
	query, args, err := a.db.Select("id", "name", "description").
		From("diseases").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog diseases query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load catalog diseases", err)
	}
	defer rows.Close()

	diseases := map[int]*entities.DiseaseProfile{}
	for rows.Next() {
		profile := &entities.DiseaseProfile{SymptomIDs: []int{}}
		var description sql.NullString
		if err := rows.Scan(&profile.ID, &profile.Name, &description); err != nil {
			return nil, apperrors.NewInternalError("failed to scan catalog disease", err)
		}
		profile.Description = description.String
		diseases[profile.ID] = profile
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating catalog diseases", err)
	}

	return diseases, nil
}

func (a *CatalogAdapter) loadProfiles(ctx context.Context, tx *sql.Tx, diseases map[int]*entities.DiseaseProfile) error {
	query, args, err := a.db.Select("disease_id", "symptom_id").
		From("disease_symptoms").
		Order(goqu.I("disease_id").Asc(), goqu.I("symptom_id").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build catalog associations query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewUnavailableError("failed to load catalog associations", err)
	}
	defer rows.Close()

	for rows.Next() {
		var diseaseID, symptomID int
		if err := rows.Scan(&diseaseID, &symptomID); err != nil {
			return apperrors.NewInternalError("failed to scan catalog association", err)
		}
		if profile, ok := diseases[diseaseID]; ok {
			profile.SymptomCount++
			profile.SymptomIDs = append(profile.SymptomIDs, symptomID)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewUnavailableError("error iterating catalog associations", err)
	}

	return nil
}

func (a *CatalogAdapter) loadRecommendations(ctx context.Context, tx *sql.Tx) (map[int][]*entities.Recommendation, error) {
	query, args, err := a.db.Select("id", "disease_id", "recommendation_text", "precaution_order").
		From("recommendations").
		Order(goqu.I("disease_id").Asc(), goqu.I("precaution_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog recommendations query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load catalog recommendations", err)
	}
	defer rows.Close()

	recommendations := map[int][]*entities.Recommendation{}
	for rows.Next() {
		rec := &entities.Recommendation{}
		if err := rows.Scan(&rec.ID, &rec.DiseaseID, &rec.Text, &rec.Order); err != nil {
			return nil, apperrors.NewInternalError("failed to scan catalog recommendation", err)
		}
		recommendations[rec.DiseaseID] = append(recommendations[rec.DiseaseID], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("error iterating catalog recommendations", err)
	}

	return recommendations, nil
}
