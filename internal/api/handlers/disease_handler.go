package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// DiseaseProvider defines the disease operations used by the handler.
type DiseaseProvider interface {
	List(ctx context.Context) ([]*entities.Disease, error)
	GetByID(ctx context.Context, id int) (*entities.DiseaseDetail, error)
}

// DiseaseHandler handles disease-related HTTP requests
type DiseaseHandler struct {
	service            DiseaseProvider
	recommendationRepo repositories.RecommendationRepository
}

// NewDiseaseHandler creates a new disease handler
func NewDiseaseHandler(service DiseaseProvider, recommendationRepo repositories.RecommendationRepository) *DiseaseHandler {
	return &DiseaseHandler{
		service:            service,
		recommendationRepo: recommendationRepo,
	}
}

// ListDiseases handles GET /api/diseases
func (h *DiseaseHandler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list diseases")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"total_count": len(diseases),
		"diseases":    diseases,
	})
}

// GetDisease handles GET /api/diseases/:id
func (h *DiseaseHandler) GetDisease(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "disease id must be an integer")
		return
	}

	disease, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, disease)
}

// GetDiseaseRecommendations handles GET /api/diseases/:id/recommendations
func (h *DiseaseHandler) GetDiseaseRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "disease id must be an integer")
		return
	}

	recommendations, err := h.recommendationRepo.ListByDisease(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list recommendations")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"disease_id":      id,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}
