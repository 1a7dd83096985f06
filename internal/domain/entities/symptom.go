package entities

import "time"

// Symptom represents a named clinical sign used as a matching feature
type Symptom struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	SeverityWeight int       `json:"severity_weight" db:"severity_weight"`
	CreatedAt      time.Time `json:"created_at,omitempty" db:"created_at"`
}
