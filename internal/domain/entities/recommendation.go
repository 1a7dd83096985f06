package entities

// Recommendation is an ordered precaution/advice string attached to a disease
type Recommendation struct {
	ID        int    `json:"id" db:"id"`
	DiseaseID int    `json:"disease_id" db:"disease_id"`
	Text      string `json:"text" db:"recommendation_text"`
	Order     int    `json:"order" db:"precaution_order"`
}
