package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic_AlwaysOneOfFourLevels(t *testing.T) {
	texts := []string{
		"",
		"fever cough and sore throat",
		"vomiting since last night",
		"chest pain radiating to arm",
		"itchy rash on arms",
		"just feeling off",
		"!!!???",
	}
	severities := []string{"", SeverityMild, SeverityModerate, SeveritySignificant, SeveritySevere, SeverityEmergencyLevel, "unknown"}
	ages := []int{0, 1, 30, 66, 120}

	for _, text := range texts {
		for _, sev := range severities {
			for _, age := range ages {
				for _, pregnant := range []bool{false, true} {
					in := SymptomInput{SymptomsText: text, Severity: sev, Age: age, IsPregnant: pregnant}
					res := Heuristic(in)

					require.Contains(t, Levels, res.TriageLevel, "input %+v", in)
					assert.Equal(t, SourceHeuristic, res.Source)
					assert.NotNil(t, res.Recommendations.Medicines)
					assert.NotNil(t, res.Recommendations.HomeRemedies)
					assert.NotNil(t, res.Recommendations.WhatToDo)
					assert.NotNil(t, res.Recommendations.WhatNotToDo)
					assert.NotEmpty(t, res.Disclaimer)
				}
			}
		}
	}
}

func TestHeuristic_Bundles(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		reason     string
		confidence float64
		special    string
	}{
		{"flu", "high fever, dry cough and sore throat", "flu-like illness", 0.45, "General Physician"},
		{"cold", "sneezing with a runny nose", "common cold", 0.45, "General Physician"},
		{"gi", "loose motion and nausea", "gastrointestinal upset", 0.4, "Gastroenterologist"},
		{"headache", "throbbing headache behind the eyes", "headache", 0.4, "Neurologist"},
		{"skin", "red itchy rash", "skin irritation", 0.4, "Dermatologist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Heuristic(SymptomInput{SymptomsText: tt.text, Severity: SeverityMild, Age: 30})
			assert.Equal(t, LevelSelfCare, res.TriageLevel)
			assert.Contains(t, res.TriageReason, "consistent with "+tt.reason)
			assert.Equal(t, tt.confidence, res.ConfidenceScore)
			assert.Equal(t, tt.special, res.Recommendations.DoctorSpecialization)
		})
	}
}

func TestHeuristic_Generic(t *testing.T) {
	res := Heuristic(SymptomInput{SymptomsText: "feeling tired all the time", Severity: SeverityModerate, Age: 30})

	assert.Equal(t, LevelSeeDoctor, res.TriageLevel)
	assert.Equal(t, 0.35, res.ConfidenceScore)
	assert.Equal(t, "Based on reported moderate symptoms. Professional medical consultation recommended.", res.TriageReason)
	require.Len(t, res.Recommendations.Medicines, 1)
	assert.Equal(t, "Consult a pharmacist", res.Recommendations.Medicines[0].Name)
}

func TestHeuristic_KeywordEmergency(t *testing.T) {
	res := Heuristic(SymptomInput{SymptomsText: "headache and slurred speech", Severity: SeverityMild, Age: 45})

	assert.Equal(t, LevelEmergency, res.TriageLevel)
	assert.Empty(t, res.Recommendations.Medicines)
	assert.Empty(t, res.Recommendations.HomeRemedies)
	assert.Equal(t, IndianEmergencyContacts, res.Recommendations.IndianEmergencyContacts)
	assert.Contains(t, res.TriageReason, "slurred speech")
}

func TestHeuristic_FiltersAllergiesAndPregnancy(t *testing.T) {
	in := SymptomInput{SymptomsText: "bad headache", Severity: SeverityMild, Age: 30}

	names := func(res Result) []string {
		out := make([]string, 0, len(res.Recommendations.Medicines))
		for _, m := range res.Recommendations.Medicines {
			out = append(out, m.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Paracetamol (Acetaminophen)", "Ibuprofen"}, names(Heuristic(in)))

	allergic := in
	allergic.Allergies = "Allergic to NSAIDs"
	assert.Equal(t, []string{"Paracetamol (Acetaminophen)"}, names(Heuristic(allergic)))

	pregnant := in
	pregnant.IsPregnant = true
	assert.Equal(t, []string{"Paracetamol (Acetaminophen)"}, names(Heuristic(pregnant)))

	both := pregnant
	both.Allergies = "paracetamol"
	assert.Equal(t, []string{"Consult a pharmacist"}, names(Heuristic(both)))
}
