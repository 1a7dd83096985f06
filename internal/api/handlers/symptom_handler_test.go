package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

type stubSymptomService struct {
	symptoms    []*entities.Symptom
	searchQuery string
	err         error
}

func (s *stubSymptomService) List(ctx context.Context) ([]*entities.Symptom, error) {
	return s.symptoms, s.err
}

func (s *stubSymptomService) Search(ctx context.Context, query string) ([]*entities.Symptom, error) {
	s.searchQuery = query
	return s.symptoms, s.err
}

func TestListSymptoms(t *testing.T) {
	service := &stubSymptomService{symptoms: []*entities.Symptom{
		{ID: 1, Name: "cough", SeverityWeight: 4},
		{ID: 2, Name: "fatigue", SeverityWeight: 3},
	}}
	handler := NewSymptomHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms", nil)
	rec := httptest.NewRecorder()
	handler.ListSymptoms(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.searchQuery)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "symptoms")
	assert.JSONEq(t, `"success"`, string(body["status"]))
	assert.JSONEq(t, `2`, string(body["total_count"]))
}

func TestListSymptoms_WithSearch(t *testing.T) {
	service := &stubSymptomService{symptoms: []*entities.Symptom{
		{ID: 4, Name: "high fever", SeverityWeight: 7},
	}}
	handler := NewSymptomHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms?search=fever", nil)
	rec := httptest.NewRecorder()
	handler.ListSymptoms(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fever", service.searchQuery)
}

func TestListSymptoms_BlankSearchFallsBackToList(t *testing.T) {
	service := &stubSymptomService{symptoms: []*entities.Symptom{}}
	handler := NewSymptomHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms?search=%20%20", nil)
	rec := httptest.NewRecorder()
	handler.ListSymptoms(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.searchQuery)
}
