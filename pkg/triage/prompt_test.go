package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt_OmitsEmptyFields(t *testing.T) {
	got := BuildUserPrompt(SymptomInput{
		SymptomsText: "mild headache since morning",
		Severity:     SeverityMild,
		Age:          30,
		Duration:     "   ",
	}, nil)

	assert.Contains(t, got, "Symptoms: mild headache since morning\n")
	assert.Contains(t, got, "Severity: mild\n")
	assert.Contains(t, got, "Age: 30\n")
	assert.NotContains(t, got, "Duration:")
	assert.NotContains(t, got, "Onset:")
	assert.NotContains(t, got, "Allergies:")
	assert.NotContains(t, got, "pregnant")
	assert.NotContains(t, got, "Medical Report Data")
}

func TestBuildUserPrompt_AllFields(t *testing.T) {
	in := SymptomInput{
		SymptomsText:       "cough and fever",
		Severity:           SeverityModerate,
		Onset:              "2 days ago",
		Duration:           "constant",
		ExistingConditions: "asthma",
		CurrentMedications: "salbutamol",
		Allergies:          "penicillin",
		Age:                41,
		IsPregnant:         true,
	}
	got := BuildUserPrompt(in, map[string]any{"diagnoses": []any{"bronchitis"}})

	for _, want := range []string{
		"Onset: 2 days ago\n",
		"Duration: constant\n",
		"Existing conditions: asthma\n",
		"Current medications: salbutamol\n",
		"Allergies: penicillin\n",
		"Patient is pregnant\n",
		"Medical Report Data:\n{\n  \"diagnoses\": [\n    \"bronchitis\"\n  ]\n}\n",
	} {
		assert.Contains(t, got, want)
	}

	// field order is fixed
	assert.Less(t, strings.Index(got, "Onset:"), strings.Index(got, "Allergies:"))
}

func TestBuildUserPrompt_Deterministic(t *testing.T) {
	in := SymptomInput{SymptomsText: "rash on arm", Severity: SeverityMild, Age: 12}
	report := map[string]any{"b": 1, "a": 2}
	assert.Equal(t, BuildUserPrompt(in, report), BuildUserPrompt(in, report))
}
