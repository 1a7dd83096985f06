package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/repositories"
	tsclient "github.com/medassist/symptom-assistant/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.SymptomsCollection

// TypesenseAdapter implements typo-tolerant symptom autocomplete using
// Typesense. It only backs the symptom search endpoint; diagnosis input
// resolution always goes through the catalog's exact name index.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements SymptomSearchRepository
var _ repositories.SymptomSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "severity_weight", Type: "int32"},
		},
		DefaultSortingField: pointer.String("severity_weight"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// IndexSymptoms upserts the given symptoms into the search collection
func (a *TypesenseAdapter) IndexSymptoms(ctx context.Context, symptoms []*entities.Symptom) error {
	for _, symptom := range symptoms {
		document := map[string]interface{}{
			"id":              strconv.Itoa(symptom.ID),
			"name":            symptom.Name,
			"severity_weight": symptom.SeverityWeight,
		}

		if _, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document); err != nil {
			return fmt.Errorf("failed to index symptom %s: %w", symptom.Name, err)
		}
	}

	return nil
}

// Search searches symptoms by name prefix or fuzzy match
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Symptom, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search symptoms: %w", err)
	}

	symptoms := []*entities.Symptom{}
	if result.Hits == nil {
		return symptoms, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		symptom := &entities.Symptom{}
		if val, ok := doc["id"].(string); ok {
			if id, err := strconv.Atoi(val); err == nil {
				symptom.ID = id
			}
		}
		if val, ok := doc["name"].(string); ok {
			symptom.Name = val
		}
		if val, ok := doc["severity_weight"].(float64); ok {
			symptom.SeverityWeight = int(val)
		}

		symptoms = append(symptoms, symptom)
	}

	return symptoms, nil
}
