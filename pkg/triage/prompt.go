package triage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SystemPrompt carries the safety rules and the response contract sent to every model.
const SystemPrompt = `You are a medical triage assistant for an educational demonstration tool. Your role is to analyze symptoms and provide structured health guidance following strict safety rules.

CRITICAL SAFETY RULES:
1. EMERGENCY DETECTION (MUST return emergency triage for these):
   - Chest pain or pressure
   - Severe difficulty breathing
   - Uncontrolled bleeding
   - Sudden weakness/numbness (especially one-sided)
   - Slurred speech or confusion
   - Loss of consciousness
   - Severe allergic reaction (anaphylaxis)
   - Severe burns

2. AUTOMATIC ESCALATION:
   - Age < 2 or > 65: conservative triage
   - Pregnant: escalate one level minimum
   - Severe comorbidities: conservative approach
   - Any uncertainty: escalate triage level

3. MEDICATION RULES:
   - ONLY suggest OTC medications (no prescription drugs)
   - Include dosing ONLY for common OTC meds
   - Check allergies before suggesting anything
   - If prescription needed, advise seeing doctor

4. OUTPUT FORMAT (JSON only, no additional text):
{
  "triage_level": "emergency" | "urgent-visit" | "see-doctor" | "self-care",
  "triage_reason": "Brief explanation of triage decision",
  "recommendations": {
    "medicines": [{"name": "", "dose": "", "notes": "", "evidence_level": "Strong/Moderate/Supportive"}],
    "home_remedies": ["..."],
    "what_to_do": ["..."],
    "what_not_to_do": ["..."],
    "doctor_specialization": "",
    "indian_emergency_contacts": [{"name": "", "number": ""}],
    "follow_up": {"when_to_see_provider": "", "suggested_doctor_type": ""}
  },
  "confidence_score": 0.0,
  "sources": ["..."],
  "disclaimer": "This is an educational tool only and not medical advice. Always consult healthcare professionals."
}

If triage_level is "emergency", return ONLY emergency CTA with no medicines/remedies.`

// JSONOnlySuffix is appended for providers without a separate system role.
const JSONOnlySuffix = "Respond ONLY with valid JSON, no markdown or additional text."

// BuildUserPrompt renders the symptom payload. Optional fields are omitted when empty.
func BuildUserPrompt(in SymptomInput, reportData map[string]any) string {
	var b strings.Builder

	b.WriteString("Analyze these symptoms and provide structured guidance:\n\n")
	fmt.Fprintf(&b, "Symptoms: %s\n", strings.TrimSpace(in.SymptomsText))
	fmt.Fprintf(&b, "Severity: %s\n", in.Severity)
	fmt.Fprintf(&b, "Age: %d\n", in.Age)

	optional := []struct {
		label string
		value string
	}{
		{"Onset", in.Onset},
		{"Duration", in.Duration},
		{"Existing conditions", in.ExistingConditions},
		{"Current medications", in.CurrentMedications},
		{"Allergies", in.Allergies},
	}
	for _, f := range optional {
		if v := strings.TrimSpace(f.value); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, v)
		}
	}

	if in.IsPregnant {
		b.WriteString("Patient is pregnant\n")
	}

	if len(reportData) > 0 {
		if data, err := json.MarshalIndent(reportData, "", "  "); err == nil {
			fmt.Fprintf(&b, "\nMedical Report Data:\n%s\n", data)
		}
	}

	return b.String()
}
