package services

import (
	"strings"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// SymptomResolutionService maps user-supplied symptom names to catalog
// symptom ids. Matching is exact after trimming and lowercasing; names
// that do not resolve are dropped rather than treated as errors, so a
// partially recognized input still produces a diagnosis.
type SymptomResolutionService struct{}

// NewSymptomResolutionService creates a new symptom resolution service
func NewSymptomResolutionService() *SymptomResolutionService {
	return &SymptomResolutionService{}
}

// Resolve returns the deduplicated symptom ids and the canonical names of
// the symptoms that matched, in first-encounter order of the input.
func (s *SymptomResolutionService) Resolve(catalog *entities.Catalog, rawNames []string) ([]int, []string) {
	byName := catalog.SymptomsByName()

	ids := make([]int, 0, len(rawNames))
	matched := make([]string, 0, len(rawNames))
	seen := make(map[int]struct{}, len(rawNames))

	for _, raw := range rawNames {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		symptom, ok := byName[name]
		if !ok {
			continue
		}
		if _, dup := seen[symptom.ID]; dup {
			continue
		}

		seen[symptom.ID] = struct{}{}
		ids = append(ids, symptom.ID)
		matched = append(matched, symptom.Name)
	}

	return ids, matched
}
