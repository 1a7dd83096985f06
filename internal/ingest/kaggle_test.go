package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymptom(t *testing.T) {
	assert.Equal(t, "high fever", NormalizeSymptom("High_Fever"))
	assert.Equal(t, "high fever", NormalizeSymptom("  high fever "))
	assert.Equal(t, "skin rash", NormalizeSymptom("skin_rash"))
	assert.Equal(t, "", NormalizeSymptom("   "))
}

func TestParseDiseaseSymptoms_MergesRows(t *testing.T) {
	input := `Disease,Symptom_1,Symptom_2,Symptom_3
Fungal infection,itching, skin_rash,nodal_skin_eruptions
Fungal infection,itching, skin_rash,
Common Cold,continuous_sneezing,chills,fatigue
`

	records, err := ParseDiseaseSymptoms(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)

	assert.Equal(t, "Fungal infection", records[0].Name)
	assert.Equal(t, []string{"itching", "skin rash", "nodal skin eruptions"}, records[0].Symptoms)

	assert.Equal(t, "Common Cold", records[1].Name)
	assert.Equal(t, []string{"continuous sneezing", "chills", "fatigue"}, records[1].Symptoms)
}

func TestParseDiseaseSymptoms_SkipsBlankRows(t *testing.T) {
	input := `Disease,Symptom_1
Flu,cough
,cough
   ,fever
`

	records, err := ParseDiseaseSymptoms(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Flu", records[0].Name)
}

func TestParseDiseaseSymptoms_MissingDiseaseColumn(t *testing.T) {
	input := `Name,Symptom_1
Flu,cough
`

	_, err := ParseDiseaseSymptoms(strings.NewReader(input))
	assert.Error(t, err)
}

func TestUniqueSymptoms(t *testing.T) {
	records := []*DiseaseRecord{
		{Name: "A", Symptoms: []string{"cough", "fever"}},
		{Name: "B", Symptoms: []string{"fever", "chills"}},
	}

	symptoms := UniqueSymptoms(records)

	assert.Equal(t, []string{"cough", "fever", "chills"}, symptoms)
}

func TestParsePrecautions(t *testing.T) {
	input := `Disease,Precaution_1,Precaution_2,Precaution_3,Precaution_4
Drug Reaction,stop irritation,consult nearest hospital,stop taking drug,follow up
Common Cold,drink vitamin c rich drinks,take vapour,avoid cold food,
`

	records, err := ParsePrecautions(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 7)

	assert.Equal(t, "Drug Reaction", records[0].Disease)
	assert.Equal(t, "stop irritation", records[0].Text)
	assert.Equal(t, 1, records[0].Order)
	assert.Equal(t, 4, records[3].Order)

	// Blank fourth column yields only three records for Common Cold
	assert.Equal(t, "Common Cold", records[4].Disease)
	assert.Equal(t, 3, records[6].Order)
}

func TestParsePrecautions_MissingPrecautionColumns(t *testing.T) {
	input := `Disease,Note
Flu,rest
`

	_, err := ParsePrecautions(strings.NewReader(input))
	assert.Error(t, err)
}
