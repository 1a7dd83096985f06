package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// SymptomAdapter implements SymptomRepository
type SymptomAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomAdapter creates a new symptom adapter
func NewSymptomAdapter(client *postgres.Client) repositories.SymptomRepository {
	return &SymptomAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all symptoms ordered by name
func (a *SymptomAdapter) List(ctx context.Context) ([]*entities.Symptom, error) {
	ds := a.db.Select("id", "name", "severity_weight").
		From("symptoms").
		Order(goqu.I("name").Asc())

	return a.querySymptoms(ctx, ds)
}

// Search retrieves symptoms whose name contains the query, case-insensitively
func (a *SymptomAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Symptom, error) {
	ds := a.db.Select("id", "name", "severity_weight").
		From("symptoms").
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", query))).
		Order(goqu.I("name").Asc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	return a.querySymptoms(ctx, ds)
}

func (a *SymptomAdapter) querySymptoms(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Symptom, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptoms query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query symptoms", err)
	}
	defer rows.Close()

	symptoms := []*entities.Symptom{}
	for rows.Next() {
		symptom := &entities.Symptom{}
		if err := rows.Scan(&symptom.ID, &symptom.Name, &symptom.SeverityWeight); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom", err)
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating symptoms", err)
	}

	return symptoms, nil
}
