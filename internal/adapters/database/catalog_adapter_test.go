package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/symptom-assistant/internal/adapters/database"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

func TestCatalogAdapter_Snapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewCatalogAdapter(postgres.NewClientFromDB(db))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "symptoms"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "severity_weight"}).
			AddRow(1, "cough", 4).
			AddRow(2, "high fever", 7).
			AddRow(3, "headache", 5))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "diseases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow(1, "Flu", "Influenza virus infection").
			AddRow(2, "Migraine", nil))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "disease_symptoms"`)).
		WillReturnRows(sqlmock.NewRows([]string{"disease_id", "symptom_id"}).
			AddRow(1, 1).
			AddRow(1, 2).
			AddRow(2, 3))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "recommendations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disease_id", "recommendation_text", "precaution_order"}).
			AddRow(1, 1, "rest", 1).
			AddRow(2, 1, "drink fluids", 2))
	mock.ExpectCommit()

	catalog, err := adapter.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, catalog.Symptoms, 3)
	require.Len(t, catalog.Diseases, 2)

	assert.Equal(t, "Flu", catalog.Diseases[0].Name)
	assert.Equal(t, []int{1, 2}, catalog.Diseases[0].SymptomIDs)
	assert.Equal(t, 2, catalog.Diseases[0].SymptomCount)

	assert.Equal(t, "Migraine", catalog.Diseases[1].Name)
	assert.Equal(t, []int{3}, catalog.Diseases[1].SymptomIDs)

	recs := catalog.RecommendationsFor(1)
	require.Len(t, recs, 2)
	assert.Equal(t, "rest", recs[0].Text)
	assert.Empty(t, catalog.RecommendationsFor(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_SnapshotQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewCatalogAdapter(postgres.NewClientFromDB(db))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "symptoms"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = adapter.Snapshot(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestCatalogAdapter_SnapshotEmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewCatalogAdapter(postgres.NewClientFromDB(db))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "symptoms"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "severity_weight"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "diseases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "disease_symptoms"`)).
		WillReturnRows(sqlmock.NewRows([]string{"disease_id", "symptom_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "recommendations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disease_id", "recommendation_text", "precaution_order"}))
	mock.ExpectCommit()

	catalog, err := adapter.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Empty(t, catalog.Symptoms)
	assert.Empty(t, catalog.Diseases)
}
