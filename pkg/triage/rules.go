package triage

import (
	"fmt"
	"strings"
)

// EmergencyKeywords force an emergency level when found in the symptom description.
var EmergencyKeywords = []string{
	"chest pain",
	"chest pressure",
	"difficulty breathing",
	"can't breathe",
	"cannot breathe",
	"shortness of breath",
	"uncontrolled bleeding",
	"severe bleeding",
	"sudden weakness",
	"sudden numbness",
	"slurred speech",
	"confusion",
	"loss of consciousness",
	"unconscious",
	"fainted",
	"anaphylaxis",
	"severe allergic reaction",
	"severe burn",
	"seizure",
}

// SeriousConditions are comorbidities that keep the level at see-doctor or above.
var SeriousConditions = []string{
	"diabetes",
	"heart disease",
	"heart failure",
	"coronary",
	"hypertension",
	"copd",
	"asthma",
	"kidney",
	"renal",
	"liver",
	"cancer",
	"chemotherapy",
	"hiv",
	"immunocompromised",
	"transplant",
}

var severityLevels = map[string]Level{
	SeverityEmergencyLevel: LevelEmergency,
	SeveritySevere:         LevelUrgentVisit,
	SeveritySignificant:    LevelSeeDoctor,
	SeverityModerate:       LevelSeeDoctor,
	SeverityMild:           LevelSelfCare,
}

// LevelForSeverity maps a severity label to its base level; unknown labels map to see-doctor.
func LevelForSeverity(severity string) Level {
	if lvl, ok := severityLevels[strings.ToLower(strings.TrimSpace(severity))]; ok {
		return lvl
	}
	return LevelSeeDoctor
}

// MatchEmergencyKeywords returns every emergency keyword present in text.
func MatchEmergencyKeywords(text string) []string {
	return matchAny(text, EmergencyKeywords)
}

// Escalation is the outcome of running the deterministic safety rules over a level.
type Escalation struct {
	Level   Level
	Reasons []string
}

// ApplySafetyRules raises base according to the keyword, age, pregnancy and
// comorbidity rules. Each rule can only raise the level.
func ApplySafetyRules(base Level, in SymptomInput) Escalation {
	esc := Escalation{Level: base}

	if hits := MatchEmergencyKeywords(in.SymptomsText); len(hits) > 0 {
		esc.raise(LevelEmergency, fmt.Sprintf("emergency warning signs reported (%s)", strings.Join(hits, ", ")))
	}

	if in.Age > 0 && (in.Age < 2 || in.Age > 65) {
		esc.raise(Escalate(esc.Level, 1, LevelUrgentVisit), fmt.Sprintf("age %d needs a conservative assessment", in.Age))
	}

	if in.IsPregnant {
		esc.raise(Escalate(esc.Level, 1, LevelUrgentVisit), "pregnancy escalates the level of care")
	}

	if hits := matchAny(in.ExistingConditions, SeriousConditions); len(hits) > 0 {
		esc.raise(LevelSeeDoctor, fmt.Sprintf("existing conditions (%s) need professional review", strings.Join(hits, ", ")))
	}

	return esc
}

func (e *Escalation) raise(to Level, reason string) {
	if to.Rank() > e.Level.Rank() {
		e.Level = to
		e.Reasons = append(e.Reasons, reason)
	}
}

// ApplySafetyFloor raises a model result to the level the deterministic rules
// demand. The model may be more cautious than the rules, never less.
func ApplySafetyFloor(res Result, in SymptomInput) Result {
	esc := ApplySafetyRules(res.TriageLevel, in)
	if esc.Level == res.TriageLevel {
		return res
	}

	res.TriageLevel = esc.Level
	res.TriageReason = strings.TrimSpace(res.TriageReason + " Escalated: " + strings.Join(esc.Reasons, "; ") + ".")
	res.applyEmergencyShape()
	return res
}

func matchAny(text string, terms []string) []string {
	haystack := strings.ToLower(text)
	if strings.TrimSpace(haystack) == "" {
		return nil
	}
	var hits []string
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			hits = append(hits, term)
		}
	}
	return hits
}
