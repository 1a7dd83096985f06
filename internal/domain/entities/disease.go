package entities

import "time"

// Disease represents a named condition with an associated symptom profile
type Disease struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`

	// SymptomCount is populated by list queries that join the association
	// table; it is not a stored column.
	SymptomCount int `json:"symptom_count" db:"-"`
}

// DiseaseDetail is a disease together with its full symptom profile and
// ordered recommendations
type DiseaseDetail struct {
	Disease
	Symptoms        []*Symptom        `json:"symptoms"`
	Recommendations []*Recommendation `json:"recommendations"`
}

// DiseaseSymptom relates one disease to one symptom. Weight is carried from
// the dataset but not used by scoring; every row is loaded with weight 1.0.
type DiseaseSymptom struct {
	DiseaseID int     `json:"disease_id" db:"disease_id"`
	SymptomID int     `json:"symptom_id" db:"symptom_id"`
	Weight    float64 `json:"weight" db:"weight"`
}
