package entities

import "strings"

// DiseaseProfile is a disease together with the set of symptom ids reachable
// via its associations.
type DiseaseProfile struct {
	Disease
	SymptomIDs []int `json:"symptom_ids"`
}

// Catalog is a fully materialized, immutable snapshot of the symptom-disease
// knowledge base. It is fetched once per diagnosis request (or served from
// cache) so that scoring always runs against a single consistent point in
// time. The catalog owns no behavior beyond lookup.
type Catalog struct {
	Symptoms []*Symptom        `json:"symptoms"`
	Diseases []*DiseaseProfile `json:"diseases"`

	// Recommendations holds each disease's recommendations keyed by disease
	// id, already sorted ascending by Order.
	Recommendations map[int][]*Recommendation `json:"recommendations"`
}

// SymptomsByName returns a lookup of lowercased symptom name to symptom.
// The map is rebuilt on each call; catalogs are small (roughly a hundred
// symptoms) and the snapshot must stay a plain serializable value.
func (c *Catalog) SymptomsByName() map[string]*Symptom {
	index := make(map[string]*Symptom, len(c.Symptoms))
	for _, s := range c.Symptoms {
		index[strings.ToLower(s.Name)] = s
	}
	return index
}

// RecommendationsFor returns the ordered recommendations for a disease. A
// disease without recommendations yields an empty slice, never nil access.
func (c *Catalog) RecommendationsFor(diseaseID int) []*Recommendation {
	if c.Recommendations == nil {
		return nil
	}
	return c.Recommendations[diseaseID]
}
