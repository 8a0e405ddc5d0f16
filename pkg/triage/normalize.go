package triage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in model response")

const (
	defaultReason     = "Assessment completed based on provided information"
	defaultConfidence = 0.5
	unknownMedicine   = "Unknown medication"
)

// ExtractJSONObject pulls the outermost JSON object out of free model text,
// tolerating markdown fences and prose around it.
func ExtractJSONObject(text string) (map[string]any, error) {
	raw := bytes.TrimSpace([]byte(text))
	raw = bytes.TrimPrefix(raw, []byte("```json"))
	raw = bytes.TrimPrefix(raw, []byte("```"))
	raw = bytes.TrimSuffix(raw, []byte("```"))

	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, ErrNoJSONObject
	}

	var out map[string]any
	if err := json.Unmarshal(raw[start:end+1], &out); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return out, nil
}

// Normalize coerces a parsed model response of uncertain shape into a Result.
func Normalize(raw map[string]any) Result {
	res := Result{
		TriageLevel:     LevelSeeDoctor,
		TriageReason:    defaultReason,
		ConfidenceScore: defaultConfidence,
	}

	if lvl, ok := ParseLevel(asString(raw["triage_level"])); ok {
		res.TriageLevel = lvl
	}
	if reason := strings.TrimSpace(asString(raw["triage_reason"])); reason != "" {
		res.TriageReason = reason
	}
	if score, ok := asNumber(raw["confidence_score"]); ok {
		res.ConfidenceScore = clamp01(score)
	}
	res.Sources = asStringSlice(raw["sources"])

	recs, _ := raw["recommendations"].(map[string]any)
	res.Recommendations = normalizeRecommendations(recs)

	res.Disclaimer = strings.TrimSpace(asString(raw["disclaimer"]))
	if res.Disclaimer == "" {
		res.Disclaimer = res.Recommendations.Disclaimer
	}
	if res.Disclaimer == "" {
		res.Disclaimer = DefaultDisclaimer
	}
	res.Recommendations.Disclaimer = res.Disclaimer

	res.Recommendations.EnsureDefaults()
	res.applyEmergencyShape()
	return res
}

func normalizeRecommendations(recs map[string]any) Recommendations {
	out := Recommendations{
		Medicines:    normalizeMedicines(recs["medicines"]),
		HomeRemedies: asStringSlice(recs["home_remedies"]),
		WhatToDo:     asStringSlice(recs["what_to_do"]),
		WhatNotToDo:  asStringSlice(recs["what_not_to_do"]),

		DoctorSpecialization: strings.TrimSpace(asString(recs["doctor_specialization"])),
		Disclaimer:           strings.TrimSpace(asString(recs["disclaimer"])),
	}

	if contacts, ok := recs["indian_emergency_contacts"].([]any); ok {
		out.IndianEmergencyContacts = make([]EmergencyContact, 0, len(contacts))
		for _, c := range contacts {
			m, ok := c.(map[string]any)
			if !ok {
				continue
			}
			number := strings.TrimSpace(asString(m["number"]))
			if number == "" {
				continue
			}
			out.IndianEmergencyContacts = append(out.IndianEmergencyContacts, EmergencyContact{
				Name:   strings.TrimSpace(asString(m["name"])),
				Number: number,
			})
		}
	}

	if fu, ok := recs["follow_up"].(map[string]any); ok {
		f := FollowUp{
			WhenToSeeProvider:   strings.TrimSpace(asString(fu["when_to_see_provider"])),
			SuggestedDoctorType: strings.TrimSpace(asString(fu["suggested_doctor_type"])),
		}
		if f.WhenToSeeProvider != "" || f.SuggestedDoctorType != "" {
			out.FollowUp = &f
		}
	}
	if out.DoctorSpecialization == "" && out.FollowUp != nil {
		out.DoctorSpecialization = out.FollowUp.SuggestedDoctorType
	}

	return out
}

func normalizeMedicines(v any) []Medicine {
	items, ok := v.([]any)
	if !ok {
		return []Medicine{}
	}

	meds := make([]Medicine, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case string:
			if name := strings.TrimSpace(m); name != "" {
				meds = append(meds, Medicine{Name: name})
			}
		case map[string]any:
			name := strings.TrimSpace(asString(m["name"]))
			if name == "" {
				name = unknownMedicine
			}
			meds = append(meds, Medicine{
				Name:          name,
				Dose:          strings.TrimSpace(asString(m["dose"])),
				Notes:         strings.TrimSpace(asString(m["notes"])),
				EvidenceLevel: strings.TrimSpace(asString(m["evidence_level"])),
			})
		}
	}
	return meds
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}

func clamp01(f float64) float64 {
	return math.Min(math.Max(f, 0), 1)
}
