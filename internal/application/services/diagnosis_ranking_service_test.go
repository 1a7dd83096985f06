package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

func testCatalog() *entities.Catalog {
	return &entities.Catalog{
		Symptoms: []*entities.Symptom{
			{ID: 1, Name: "cough", SeverityWeight: 4},
			{ID: 2, Name: "runny nose", SeverityWeight: 2},
			{ID: 3, Name: "sneezing", SeverityWeight: 1},
			{ID: 4, Name: "high fever", SeverityWeight: 7},
			{ID: 5, Name: "muscle pain", SeverityWeight: 5},
			{ID: 6, Name: "fatigue", SeverityWeight: 3},
			{ID: 7, Name: "headache", SeverityWeight: 5},
		},
		Diseases: []*entities.DiseaseProfile{
			{Disease: entities.Disease{ID: 1, Name: "Common Cold"}, SymptomIDs: []int{1, 2, 3}},
			{Disease: entities.Disease{ID: 2, Name: "Flu"}, SymptomIDs: []int{1, 4, 5, 6}},
			{Disease: entities.Disease{ID: 3, Name: "Migraine"}, SymptomIDs: []int{7}},
		},
		Recommendations: map[int][]*entities.Recommendation{
			2: {
				{ID: 1, DiseaseID: 2, Text: "rest", Order: 1},
				{ID: 2, DiseaseID: 2, Text: "drink fluids", Order: 2},
			},
		},
	}
}

func TestRank_ScoresAndOrders(t *testing.T) {
	svc := NewDiagnosisRankingService()
	catalog := testCatalog()

	// cough + high fever + muscle pain + headache
	candidates := svc.Rank(catalog, []int{1, 4, 5, 7})

	assert.Len(t, candidates, 3)

	assert.Equal(t, "Migraine", candidates[0].DiseaseName)
	assert.Equal(t, 1, candidates[0].MatchCount)
	assert.Equal(t, 1, candidates[0].TotalSymptoms)
	assert.Equal(t, 100, candidates[0].ConfidenceScore)

	assert.Equal(t, "Flu", candidates[1].DiseaseName)
	assert.Equal(t, 3, candidates[1].MatchCount)
	assert.Equal(t, 4, candidates[1].TotalSymptoms)
	assert.Equal(t, 75, candidates[1].ConfidenceScore)
	assert.Equal(t, []string{"rest", "drink fluids"}, candidates[1].Recommendations)

	assert.Equal(t, "Common Cold", candidates[2].DiseaseName)
	assert.Equal(t, 1, candidates[2].MatchCount)
	assert.Equal(t, 33, candidates[2].ConfidenceScore)
}

func TestRank_TruncatesConfidence(t *testing.T) {
	svc := NewDiagnosisRankingService()

	// 2 of 3 is 66.67 percent; score must come out as 66, never 67
	candidates := svc.Rank(testCatalog(), []int{2, 3})

	assert.Len(t, candidates, 1)
	assert.Equal(t, "Common Cold", candidates[0].DiseaseName)
	assert.Equal(t, 66, candidates[0].ConfidenceScore)
}

func TestRank_ExcludesNonMatchingDiseases(t *testing.T) {
	svc := NewDiagnosisRankingService()

	candidates := svc.Rank(testCatalog(), []int{7})

	assert.Len(t, candidates, 1)
	assert.Equal(t, "Migraine", candidates[0].DiseaseName)
}

func TestRank_ExcludesEmptyProfiles(t *testing.T) {
	svc := NewDiagnosisRankingService()
	catalog := testCatalog()
	catalog.Diseases = append(catalog.Diseases, &entities.DiseaseProfile{
		Disease:    entities.Disease{ID: 99, Name: "Unprofiled"},
		SymptomIDs: []int{},
	})

	candidates := svc.Rank(catalog, []int{1, 2, 3, 4, 5, 6, 7})

	for _, c := range candidates {
		assert.NotEqual(t, "Unprofiled", c.DiseaseName)
	}
}

func TestRank_TieBreakByMatchCountThenID(t *testing.T) {
	svc := NewDiagnosisRankingService()
	catalog := &entities.Catalog{
		Diseases: []*entities.DiseaseProfile{
			// Both 50 percent, but B matches 2 symptoms to A's 1
			{Disease: entities.Disease{ID: 1, Name: "A"}, SymptomIDs: []int{1, 8}},
			{Disease: entities.Disease{ID: 2, Name: "B"}, SymptomIDs: []int{1, 2, 8, 9}},
			// Identical score and match count to A, higher id loses
			{Disease: entities.Disease{ID: 3, Name: "C"}, SymptomIDs: []int{2, 9}},
		},
		Recommendations: map[int][]*entities.Recommendation{},
	}

	candidates := svc.Rank(catalog, []int{1, 2})

	assert.Equal(t, "B", candidates[0].DiseaseName)
	assert.Equal(t, "A", candidates[1].DiseaseName)
	assert.Equal(t, "C", candidates[2].DiseaseName)
}

func TestRank_CapsAtTenCandidates(t *testing.T) {
	svc := NewDiagnosisRankingService()
	catalog := &entities.Catalog{Recommendations: map[int][]*entities.Recommendation{}}
	for i := 1; i <= 15; i++ {
		catalog.Diseases = append(catalog.Diseases, &entities.DiseaseProfile{
			Disease:    entities.Disease{ID: i, Name: fmt.Sprintf("disease-%d", i)},
			SymptomIDs: []int{1},
		})
	}

	candidates := svc.Rank(catalog, []int{1})

	assert.Len(t, candidates, 10)
	// Equal scores fall back to disease id order
	assert.Equal(t, 1, candidates[0].DiseaseID)
	assert.Equal(t, 10, candidates[9].DiseaseID)
}

func TestRank_EmptyInput(t *testing.T) {
	svc := NewDiagnosisRankingService()
	assert.Empty(t, svc.Rank(testCatalog(), nil))
}

func TestRank_Idempotent(t *testing.T) {
	svc := NewDiagnosisRankingService()
	catalog := testCatalog()
	input := []int{1, 4, 5, 7}

	first := svc.Rank(catalog, input)
	second := svc.Rank(catalog, input)

	assert.Equal(t, first, second)
}
