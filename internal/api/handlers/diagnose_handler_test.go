package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

type stubDiagnosisService struct {
	diagnosis *entities.Diagnosis
	err       error
	received  []string
}

func (s *stubDiagnosisService) Diagnose(ctx context.Context, rawNames []string) (*entities.Diagnosis, error) {
	s.received = rawNames
	if s.err != nil {
		return nil, s.err
	}
	return s.diagnosis, nil
}

func postDiagnose(t *testing.T, handler *DiagnoseHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Diagnose(rec, req)
	return rec
}

func TestDiagnose_Success(t *testing.T) {
	service := &stubDiagnosisService{
		diagnosis: &entities.Diagnosis{
			InputSymptoms:   []string{"cough", "high fever"},
			MatchedSymptoms: []string{"cough", "high fever"},
			Candidates: []*entities.DiagnosisCandidate{
				{DiseaseID: 2, DiseaseName: "Flu", MatchCount: 2, TotalSymptoms: 4, ConfidenceScore: 50, Recommendations: []string{"rest"}},
			},
		},
	}
	handler := NewDiagnoseHandler(service, nil)

	rec := postDiagnose(t, handler, `{"symptom_names": ["cough", "high fever"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The request field is symptom_names; the names must reach the service
	assert.Equal(t, []string{"cough", "high fever"}, service.received)

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Found 1 possible disease(s)", resp.Message)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Flu", resp.Results[0].DiseaseName)
	assert.Equal(t, 50, resp.Results[0].ConfidenceScore)
}

func TestDiagnose_NoSymptomsMatched(t *testing.T) {
	handler := NewDiagnoseHandler(&stubDiagnosisService{
		diagnosis: &entities.Diagnosis{
			InputSymptoms:   []string{"itchy elbow"},
			MatchedSymptoms: []string{},
			Candidates:      []*entities.DiagnosisCandidate{},
		},
	}, nil)

	rec := postDiagnose(t, handler, `{"symptom_names": ["itchy elbow"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "warning", resp.Status)
	assert.Equal(t, "No symptoms matched in database", resp.Message)
	assert.Empty(t, resp.Results)
}

func TestDiagnose_NoDiseasesFound(t *testing.T) {
	handler := NewDiagnoseHandler(&stubDiagnosisService{
		diagnosis: &entities.Diagnosis{
			InputSymptoms:   []string{"cough"},
			MatchedSymptoms: []string{"cough"},
			Candidates:      []*entities.DiagnosisCandidate{},
		},
	}, nil)

	rec := postDiagnose(t, handler, `{"symptom_names": ["cough"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "warning", resp.Status)
	assert.Equal(t, "No diseases found matching these symptoms", resp.Message)
}

func TestDiagnose_InvalidPayload(t *testing.T) {
	handler := NewDiagnoseHandler(&stubDiagnosisService{}, nil)

	rec := postDiagnose(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiagnose_EmptySymptoms(t *testing.T) {
	handler := NewDiagnoseHandler(&stubDiagnosisService{
		err: apperrors.NewValidationError("symptoms list cannot be empty"),
	}, nil)

	rec := postDiagnose(t, handler, `{"symptom_names": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "symptoms list cannot be empty")
}

func TestDiagnose_CatalogUnavailable(t *testing.T) {
	handler := NewDiagnoseHandler(&stubDiagnosisService{
		err: apperrors.NewUnavailableError("failed to load catalog symptoms", nil),
	}, nil)

	rec := postDiagnose(t, handler, `{"symptom_names": ["cough"]}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
