package services

import (
	"sort"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// maxCandidates caps how many ranked diseases a single diagnosis returns.
const maxCandidates = 10

// DiagnosisRankingService scores disease profiles against a set of
// resolved symptom ids. It is pure computation over an in-memory catalog
// snapshot and holds no state of its own.
type DiagnosisRankingService struct{}

// NewDiagnosisRankingService creates a new diagnosis ranking service
func NewDiagnosisRankingService() *DiagnosisRankingService {
	return &DiagnosisRankingService{}
}

// Rank returns up to maxCandidates disease candidates ordered by
// confidence, then match count, then disease id. Diseases with no
// overlapping symptoms are excluded entirely.
func (s *DiagnosisRankingService) Rank(catalog *entities.Catalog, symptomIDs []int) []*entities.DiagnosisCandidate {
	if len(symptomIDs) == 0 {
		return []*entities.DiagnosisCandidate{}
	}

	input := make(map[int]struct{}, len(symptomIDs))
	for _, id := range symptomIDs {
		input[id] = struct{}{}
	}

	candidates := []*entities.DiagnosisCandidate{}
	for _, profile := range catalog.Diseases {
		total := len(profile.SymptomIDs)
		if total == 0 {
			continue
		}

		matches := 0
		for _, id := range profile.SymptomIDs {
			if _, ok := input[id]; ok {
				matches++
			}
		}
		if matches == 0 {
			continue
		}

		// Integer division truncates toward zero, so 2 of 3 scores 66.
		confidence := matches * 100 / total

		candidates = append(candidates, &entities.DiagnosisCandidate{
			DiseaseID:       profile.ID,
			DiseaseName:     profile.Name,
			Description:     profile.Description,
			MatchCount:      matches,
			TotalSymptoms:   total,
			ConfidenceScore: confidence,
			Recommendations: s.recommendationTexts(catalog, profile.ID),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ConfidenceScore != candidates[j].ConfidenceScore {
			return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
		}
		if candidates[i].MatchCount != candidates[j].MatchCount {
			return candidates[i].MatchCount > candidates[j].MatchCount
		}
		return candidates[i].DiseaseID < candidates[j].DiseaseID
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return candidates
}

func (s *DiagnosisRankingService) recommendationTexts(catalog *entities.Catalog, diseaseID int) []string {
	recs := catalog.RecommendationsFor(diseaseID)
	texts := make([]string, 0, len(recs))
	for _, rec := range recs {
		texts = append(texts, rec.Text)
	}
	return texts
}
