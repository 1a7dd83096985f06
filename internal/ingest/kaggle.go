// Package ingest parses the Kaggle disease-symptom dataset files into plain
// records the loader writes to the database. Parsing is kept separate from
// persistence so it can be tested without a database.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DiseaseRecord is one disease with its deduplicated, normalized symptom
// names merged across every dataset row for that disease.
type DiseaseRecord struct {
	Name     string
	Symptoms []string
}

// PrecautionRecord is one recommendation for a disease. Order reflects the
// precaution column it came from, starting at 1.
type PrecautionRecord struct {
	Disease string
	Text    string
	Order   int
}

// NormalizeSymptom canonicalizes a raw symptom token: trimmed, lowercased,
// underscores replaced with spaces. Dataset tokens like "High_Fever" and
// " high fever" collapse to the same name.
func NormalizeSymptom(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", " ")
}

// ParseDiseaseSymptoms reads the DiseaseAndSymptoms CSV. The file carries one
// row per disease case with up to 17 symptom columns; rows for the same
// disease are merged into a single record preserving first-encounter order.
func ParseDiseaseSymptoms(r io.Reader) ([]*DiseaseRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	diseaseCol := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "disease") {
			diseaseCol = i
			break
		}
	}
	if diseaseCol == -1 {
		return nil, fmt.Errorf("no disease column in header %v", header)
	}

	records := []*DiseaseRecord{}
	byName := map[string]*DiseaseRecord{}
	seen := map[string]map[string]struct{}{}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if diseaseCol >= len(row) {
			continue
		}

		name := strings.TrimSpace(row[diseaseCol])
		if name == "" {
			continue
		}

		record, ok := byName[name]
		if !ok {
			record = &DiseaseRecord{Name: name}
			byName[name] = record
			seen[name] = map[string]struct{}{}
			records = append(records, record)
		}

		for i, cell := range row {
			if i == diseaseCol {
				continue
			}
			symptom := NormalizeSymptom(cell)
			if symptom == "" {
				continue
			}
			if _, dup := seen[name][symptom]; dup {
				continue
			}
			seen[name][symptom] = struct{}{}
			record.Symptoms = append(record.Symptoms, symptom)
		}
	}

	return records, nil
}

// UniqueSymptoms returns every distinct symptom name across the records, in
// first-encounter order.
func UniqueSymptoms(records []*DiseaseRecord) []string {
	seen := map[string]struct{}{}
	symptoms := []string{}
	for _, record := range records {
		for _, symptom := range record.Symptoms {
			if _, dup := seen[symptom]; dup {
				continue
			}
			seen[symptom] = struct{}{}
			symptoms = append(symptoms, symptom)
		}
	}
	return symptoms
}

// ParsePrecautions reads the Disease precaution CSV. Each precaution column
// yields one record whose Order is the column's ordinal position.
func ParsePrecautions(r io.Reader) ([]*PrecautionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	diseaseCol := -1
	precautionCols := []int{}
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case strings.Contains(name, "disease") && diseaseCol == -1:
			diseaseCol = i
		case strings.Contains(name, "precaution"):
			precautionCols = append(precautionCols, i)
		}
	}
	if diseaseCol == -1 {
		return nil, fmt.Errorf("no disease column in header %v", header)
	}
	if len(precautionCols) == 0 {
		return nil, fmt.Errorf("no precaution columns in header %v", header)
	}

	records := []*PrecautionRecord{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if diseaseCol >= len(row) {
			continue
		}

		disease := strings.TrimSpace(row[diseaseCol])
		if disease == "" {
			continue
		}

		for order, col := range precautionCols {
			if col >= len(row) {
				continue
			}
			text := strings.TrimSpace(row[col])
			if text == "" {
				continue
			}
			records = append(records, &PrecautionRecord{
				Disease: disease,
				Text:    text,
				Order:   order + 1,
			})
		}
	}

	return records, nil
}
