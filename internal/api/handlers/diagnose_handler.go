package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/infrastructure/observability"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// DiagnosisProvider defines the diagnosis operation used by the handler.
type DiagnosisProvider interface {
	Diagnose(ctx context.Context, rawNames []string) (*entities.Diagnosis, error)
}

// DiagnoseHandler handles diagnosis requests
type DiagnoseHandler struct {
	service DiagnosisProvider
	metrics *observability.Metrics
}

// NewDiagnoseHandler creates a new diagnose handler. metrics may be nil in
// tests.
func NewDiagnoseHandler(service DiagnosisProvider, metrics *observability.Metrics) *DiagnoseHandler {
	return &DiagnoseHandler{service: service, metrics: metrics}
}

type diagnoseRequest struct {
	SymptomNames []string `json:"symptom_names"`
}

type diagnoseResponse struct {
	Status          string                         `json:"status"`
	Message         string                         `json:"message"`
	InputSymptoms   []string                       `json:"input_symptoms"`
	MatchedSymptoms []string                       `json:"matched_symptoms"`
	Results         []*entities.DiagnosisCandidate `json:"results"`
}

// Diagnose handles POST /api/diagnose
func (h *DiagnoseHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var payload diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	diagnosis, err := h.service.Diagnose(r.Context(), payload.SymptomNames)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			case apperrors.ErrorTypeUnavailable:
				observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("catalog unavailable")
				respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.metrics != nil {
		observability.RecordDiagnosis(r.Context(), h.metrics, len(diagnosis.Candidates))
	}

	respondWithJSON(w, http.StatusOK, buildDiagnoseResponse(diagnosis))
}

// buildDiagnoseResponse wraps a diagnosis in the API envelope. A request
// where nothing matched is still a 200; the warning status tells the client
// whether no names resolved or no disease overlapped.
func buildDiagnoseResponse(diagnosis *entities.Diagnosis) diagnoseResponse {
	resp := diagnoseResponse{
		InputSymptoms:   diagnosis.InputSymptoms,
		MatchedSymptoms: diagnosis.MatchedSymptoms,
		Results:         diagnosis.Candidates,
	}

	switch {
	case len(diagnosis.MatchedSymptoms) == 0:
		resp.Status = "warning"
		resp.Message = "No symptoms matched in database"
	case len(diagnosis.Candidates) == 0:
		resp.Status = "warning"
		resp.Message = "No diseases found matching these symptoms"
	default:
		resp.Status = "success"
		resp.Message = fmt.Sprintf("Found %d possible disease(s)", len(diagnosis.Candidates))
	}

	return resp
}
