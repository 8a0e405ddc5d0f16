package triage

// Severity labels offered by the symptom form.
const (
	SeverityMild           = "mild"
	SeverityModerate       = "moderate"
	SeveritySignificant    = "significant"
	SeveritySevere         = "severe"
	SeverityEmergencyLevel = "emergency-level"
)

// Sources recorded on a Result.
const (
	SourceHeuristic = "heuristic"
)

const DefaultDisclaimer = "This is an educational tool only and not medical advice. Always consult healthcare professionals."

// SymptomInput is the structured payload collected by the symptom form.
type SymptomInput struct {
	SymptomsText       string `json:"symptoms_text"`
	Severity           string `json:"severity"`
	Onset              string `json:"onset,omitempty"`
	Duration           string `json:"duration,omitempty"`
	ExistingConditions string `json:"existing_conditions,omitempty"`
	CurrentMedications string `json:"current_medications,omitempty"`
	Allergies          string `json:"allergies,omitempty"`
	Age                int    `json:"age"`
	IsPregnant         bool   `json:"is_pregnant"`
}

type Medicine struct {
	Name          string `json:"name"`
	Dose          string `json:"dose,omitempty"`
	Notes         string `json:"notes,omitempty"`
	EvidenceLevel string `json:"evidence_level,omitempty"`
}

type EmergencyContact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

type FollowUp struct {
	WhenToSeeProvider   string `json:"when_to_see_provider,omitempty"`
	SuggestedDoctorType string `json:"suggested_doctor_type,omitempty"`
}

// Recommendations is the care bundle stored on a session. Every slice is non-nil
// once it has passed through Normalize or the heuristic.
type Recommendations struct {
	Medicines               []Medicine         `json:"medicines"`
	HomeRemedies            []string           `json:"home_remedies"`
	WhatToDo                []string           `json:"what_to_do"`
	WhatNotToDo             []string           `json:"what_not_to_do"`
	DoctorSpecialization    string             `json:"doctor_specialization,omitempty"`
	IndianEmergencyContacts []EmergencyContact `json:"indian_emergency_contacts"`
	FollowUp                *FollowUp          `json:"follow_up,omitempty"`
	Disclaimer              string             `json:"disclaimer"`
}

// Result is the canonical analysis outcome regardless of which path produced it.
type Result struct {
	TriageLevel     Level           `json:"triage_level"`
	TriageReason    string          `json:"triage_reason"`
	Recommendations Recommendations `json:"recommendations"`
	ConfidenceScore float64         `json:"confidence_score"`
	Sources         []string        `json:"sources"`
	Disclaimer      string          `json:"disclaimer"`
	Source          string          `json:"analysis_source"`
}

// IndianEmergencyContacts is attached to every emergency result.
var IndianEmergencyContacts = []EmergencyContact{
	{Name: "National Emergency Number", Number: "112"},
	{Name: "Ambulance", Number: "108"},
	{Name: "Ambulance (alternate)", Number: "102"},
}

// EnsureDefaults replaces nil slices with empty ones.
func (r *Recommendations) EnsureDefaults() {
	if r.Medicines == nil {
		r.Medicines = []Medicine{}
	}
	if r.HomeRemedies == nil {
		r.HomeRemedies = []string{}
	}
	if r.WhatToDo == nil {
		r.WhatToDo = []string{}
	}
	if r.WhatNotToDo == nil {
		r.WhatNotToDo = []string{}
	}
	if r.IndianEmergencyContacts == nil {
		r.IndianEmergencyContacts = []EmergencyContact{}
	}
	if r.Disclaimer == "" {
		r.Disclaimer = DefaultDisclaimer
	}
}

// applyEmergencyShape strips self-treatment advice and attaches the emergency contacts.
func (r *Result) applyEmergencyShape() {
	if r.TriageLevel != LevelEmergency {
		return
	}
	r.Recommendations.Medicines = []Medicine{}
	r.Recommendations.HomeRemedies = []string{}
	if len(r.Recommendations.IndianEmergencyContacts) == 0 {
		r.Recommendations.IndianEmergencyContacts = append([]EmergencyContact(nil), IndianEmergencyContacts...)
	}
	callNow := "Call 112 or 108 immediately or go to the nearest emergency department"
	if len(r.Recommendations.WhatToDo) == 0 || r.Recommendations.WhatToDo[0] != callNow {
		r.Recommendations.WhatToDo = append([]string{callNow}, r.Recommendations.WhatToDo...)
	}
	if r.Recommendations.DoctorSpecialization == "" {
		r.Recommendations.DoctorSpecialization = "Emergency Medicine"
	}
}
