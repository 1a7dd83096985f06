package entities

// DiagnosisCandidate is a request-scoped scoring result for one disease. It
// is constructed fresh per diagnosis request and never persisted.
type DiagnosisCandidate struct {
	DiseaseID       int      `json:"disease_id"`
	DiseaseName     string   `json:"disease_name"`
	Description     string   `json:"description,omitempty"`
	MatchCount      int      `json:"match_count"`
	TotalSymptoms   int      `json:"total_symptoms"`
	ConfidenceScore int      `json:"confidence_score"`
	Recommendations []string `json:"recommendations"`
}

// Diagnosis is the outcome of one diagnosis request.
type Diagnosis struct {
	InputSymptoms   []string              `json:"input_symptoms"`
	MatchedSymptoms []string              `json:"matched_symptoms"`
	Candidates      []*DiagnosisCandidate `json:"results"`
}
