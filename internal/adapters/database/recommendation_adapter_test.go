package database_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/symptom-assistant/internal/adapters/database"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
)

func TestRecommendationAdapter_ListByDisease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewRecommendationAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "recommendations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disease_id", "recommendation_text", "precaution_order"}).
			AddRow(1, 2, "rest", 1).
			AddRow(2, 2, "drink plenty of fluids", 2))

	recommendations, err := adapter.ListByDisease(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, recommendations, 2)
	assert.Equal(t, "rest", recommendations[0].Text)
	assert.Equal(t, 1, recommendations[0].Order)
	assert.Equal(t, "drink plenty of fluids", recommendations[1].Text)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationAdapter_ListByDiseaseEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewRecommendationAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "recommendations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disease_id", "recommendation_text", "precaution_order"}))

	recommendations, err := adapter.ListByDisease(context.Background(), 99)
	require.NoError(t, err)

	assert.Empty(t, recommendations)
	assert.NotNil(t, recommendations)
}
