package services

import (
	"context"
	"log"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
)

const defaultSearchLimit = 20

// SymptomService serves the symptom listing and autocomplete endpoints.
// Search prefers the Typesense index for typo tolerance and falls back to
// a database ILIKE search when no index is configured or the index fails.
type SymptomService struct {
	repo       repositories.SymptomRepository
	searchRepo repositories.SymptomSearchRepository
}

// NewSymptomService creates a new symptom service. searchRepo may be nil
// when no search backend is configured.
func NewSymptomService(repo repositories.SymptomRepository, searchRepo repositories.SymptomSearchRepository) *SymptomService {
	return &SymptomService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// List returns all known symptoms ordered by name
func (s *SymptomService) List(ctx context.Context) ([]*entities.Symptom, error) {
	return s.repo.List(ctx)
}

// Search returns symptoms matching the query
func (s *SymptomService) Search(ctx context.Context, query string) ([]*entities.Symptom, error) {
	if s.searchRepo != nil {
		symptoms, err := s.searchRepo.Search(ctx, query, defaultSearchLimit)
		if err == nil {
			return symptoms, nil
		}
		log.Printf("Symptom search index unavailable, falling back to database: %v", err)
	}

	return s.repo.Search(ctx, query, defaultSearchLimit)
}
