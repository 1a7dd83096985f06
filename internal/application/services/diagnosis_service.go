package services

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	apperrors "github.com/medassist/symptom-assistant/pkg/errors"
)

// DiagnosisService orchestrates a diagnosis request: load the catalog
// snapshot, resolve the input names, rank disease candidates.
type DiagnosisService struct {
	catalogRepo repositories.CatalogRepository
	resolver    *SymptomResolutionService
	ranker      *DiagnosisRankingService
}

// NewDiagnosisService creates a new diagnosis service
func NewDiagnosisService(
	catalogRepo repositories.CatalogRepository,
	resolver *SymptomResolutionService,
	ranker *DiagnosisRankingService,
) *DiagnosisService {
	return &DiagnosisService{
		catalogRepo: catalogRepo,
		resolver:    resolver,
		ranker:      ranker,
	}
}

// Diagnose resolves the given symptom names and returns ranked disease
// candidates. When none of the names resolve, the result carries empty
// matches and candidates; the ranking step is skipped entirely.
func (s *DiagnosisService) Diagnose(ctx context.Context, rawNames []string) (*entities.Diagnosis, error) {
	if len(rawNames) == 0 {
		return nil, apperrors.NewValidationError("symptoms list cannot be empty")
	}

	catalog, err := s.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ids, matched := s.resolver.Resolve(catalog, rawNames)

	diagnosis := &entities.Diagnosis{
		InputSymptoms:   rawNames,
		MatchedSymptoms: matched,
		Candidates:      []*entities.DiagnosisCandidate{},
	}

	if len(ids) == 0 {
		return diagnosis, nil
	}

	diagnosis.Candidates = s.ranker.Rank(catalog, ids)
	return diagnosis, nil
}
