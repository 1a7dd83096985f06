package routes

import (
	"net/http"

	"github.com/medassist/symptom-assistant/internal/api/handlers"
	"github.com/medassist/symptom-assistant/internal/api/middleware"
	"github.com/medassist/symptom-assistant/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	diagnoseHandler *handlers.DiagnoseHandler
	symptomHandler  *handlers.SymptomHandler
	diseaseHandler  *handlers.DiseaseHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	diagnoseHandler *handlers.DiagnoseHandler,
	symptomHandler *handlers.SymptomHandler,
	diseaseHandler *handlers.DiseaseHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		diagnoseHandler: diagnoseHandler,
		symptomHandler:  symptomHandler,
		diseaseHandler:  diseaseHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Diagnosis endpoint
	r.mux.HandleFunc("POST /api/diagnose", r.diagnoseHandler.Diagnose)

	// Symptom endpoints
	r.mux.HandleFunc("GET /api/symptoms", r.symptomHandler.ListSymptoms)

	// Disease endpoints
	r.mux.HandleFunc("GET /api/diseases", r.diseaseHandler.ListDiseases)
	r.mux.HandleFunc("GET /api/diseases/{id}", r.diseaseHandler.GetDisease)
	r.mux.HandleFunc("GET /api/diseases/{id}/recommendations", r.diseaseHandler.GetDiseaseRecommendations)

	// Apply middleware in reverse order (last middleware wraps first).
	// The cache sits innermost so HITs still pass through the access log
	// and the observability span.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
