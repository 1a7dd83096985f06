package services

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
)

// DiseaseService serves the disease browsing endpoints
type DiseaseService struct {
	repo repositories.DiseaseRepository
}

// NewDiseaseService creates a new disease service
func NewDiseaseService(repo repositories.DiseaseRepository) *DiseaseService {
	return &DiseaseService{repo: repo}
}

// List returns all diseases with their symptom counts
func (s *DiseaseService) List(ctx context.Context) ([]*entities.Disease, error) {
	return s.repo.List(ctx)
}

// GetByID returns a disease with its full symptom profile and recommendations
func (s *DiseaseService) GetByID(ctx context.Context, id int) (*entities.DiseaseDetail, error) {
	return s.repo.GetByID(ctx, id)
}
