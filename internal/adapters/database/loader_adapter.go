package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// schema is the idempotent catalog DDL. The loader applies it on every run
// so a fresh database needs no separate migration step.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS symptoms (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		severity_weight INTEGER DEFAULT 5,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS diseases (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS disease_symptoms (
		id SERIAL PRIMARY KEY,
		disease_id INTEGER NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
		symptom_id INTEGER NOT NULL REFERENCES symptoms(id) ON DELETE CASCADE,
		weight DECIMAL(3, 2) DEFAULT 1.0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(disease_id, symptom_id)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id SERIAL PRIMARY KEY,
		disease_id INTEGER NOT NULL REFERENCES diseases(id) ON DELETE CASCADE,
		recommendation_text TEXT NOT NULL,
		precaution_order INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_disease_symptoms_disease ON disease_symptoms(disease_id)`,
	`CREATE INDEX IF NOT EXISTS idx_disease_symptoms_symptom ON disease_symptoms(symptom_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_disease ON recommendations(disease_id)`,
}

// CatalogStats summarizes the persisted catalog after a load.
type CatalogStats struct {
	Symptoms        int
	Diseases        int
	Associations    int
	Recommendations int
}

// LoaderAdapter performs the write side of catalog ingestion. The serving
// adapters stay read-only; only the loader binary uses this.
type LoaderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLoaderAdapter creates a new loader adapter
func NewLoaderAdapter(client *postgres.Client) *LoaderAdapter {
	return &LoaderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// InitSchema creates the catalog tables and indexes if they do not exist
func (a *LoaderAdapter) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := a.client.DB().ExecContext(ctx, stmt); err != nil {
			return apperrors.NewInternalError("failed to apply schema", err)
		}
	}
	return nil
}

// UpsertSymptoms inserts the given symptom names, skipping ones that already
// exist. All dataset symptoms share the default severity weight since the
// source carries no severity signal.
func (a *LoaderAdapter) UpsertSymptoms(ctx context.Context, names []string, severityWeight int) error {
	for _, name := range names {
		query, args, err := a.db.Insert("symptoms").
			Rows(goqu.Record{"name": name, "severity_weight": severityWeight}).
			OnConflict(goqu.DoNothing()).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build symptom insert", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to insert symptom", err)
		}
	}
	return nil
}

// SymptomIDsByName returns a name to id mapping for every stored symptom
func (a *LoaderAdapter) SymptomIDsByName(ctx context.Context) (map[string]int, error) {
	query, args, err := a.db.Select("id", "name").From("symptoms").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptom lookup query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query symptoms", err)
	}
	defer rows.Close()

	ids := map[string]int{}
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating symptoms", err)
	}

	return ids, nil
}

// UpsertDisease inserts a disease and returns its id. An existing disease
// keeps its row; the update-on-conflict makes RETURNING work either way.
func (a *LoaderAdapter) UpsertDisease(ctx context.Context, name string) (int, error) {
	query, args, err := a.db.Insert("diseases").
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{"name": goqu.L("EXCLUDED.name")})).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build disease insert", err)
	}

	var id int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperrors.NewInternalError("failed to insert disease", err)
	}
	return id, nil
}

// LinkDiseaseSymptom associates a symptom with a disease profile
func (a *LoaderAdapter) LinkDiseaseSymptom(ctx context.Context, diseaseID, symptomID int, weight float64) error {
	query, args, err := a.db.Insert("disease_symptoms").
		Rows(goqu.Record{"disease_id": diseaseID, "symptom_id": symptomID, "weight": weight}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build association insert", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert association", err)
	}
	return nil
}

// ReplaceRecommendations rewrites a disease's recommendations. Deleting first
// keeps reloads idempotent; plain inserts would duplicate rows on every run.
func (a *LoaderAdapter) ReplaceRecommendations(ctx context.Context, diseaseID int, texts []string, orders []int) error {
	query, args, err := a.db.Delete("recommendations").
		Where(goqu.Ex{"disease_id": diseaseID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build recommendations delete", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete recommendations", err)
	}

	for i, text := range texts {
		query, args, err := a.db.Insert("recommendations").
			Rows(goqu.Record{
				"disease_id":          diseaseID,
				"recommendation_text": text,
				"precaution_order":    orders[i],
			}).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build recommendation insert", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to insert recommendation", err)
		}
	}
	return nil
}

// Stats returns row counts for the loaded catalog
func (a *LoaderAdapter) Stats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}
	counts := []struct {
		table string
		dest  *int
	}{
		{"symptoms", &stats.Symptoms},
		{"diseases", &stats.Diseases},
		{"disease_symptoms", &stats.Associations},
		{"recommendations", &stats.Recommendations},
	}

	for _, c := range counts {
		query, args, err := a.db.Select(goqu.COUNT("*")).From(c.table).ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build count query", err)
		}
		if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(c.dest); err != nil {
			return nil, apperrors.NewInternalError("failed to count rows", err)
		}
	}

	return stats, nil
}
