package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// SymptomProvider defines the symptom operations used by the handler.
type SymptomProvider interface {
	List(ctx context.Context) ([]*entities.Symptom, error)
	Search(ctx context.Context, query string) ([]*entities.Symptom, error)
}

// SymptomHandler handles symptom-related HTTP requests
type SymptomHandler struct {
	service SymptomProvider
}

// NewSymptomHandler creates a new symptom handler
func NewSymptomHandler(service SymptomProvider) *SymptomHandler {
	return &SymptomHandler{service: service}
}

// ListSymptoms handles GET /api/symptoms with an optional search parameter
func (h *SymptomHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))

	var (
		symptoms []*entities.Symptom
		err      error
	)
	if query != "" {
		symptoms, err = h.service.Search(r.Context(), query)
	} else {
		symptoms, err = h.service.List(r.Context())
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list symptoms")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"total_count": len(symptoms),
		"symptoms":    symptoms,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
