package triage

import (
	"fmt"
	"strings"
)

const heuristicDisclaimer = "This fallback assessment is for educational purposes only. Please consult with qualified healthcare professionals for accurate diagnosis and treatment."

type cannedMedicine struct {
	Medicine
	// matched against declared allergies
	aliases          []string
	avoidInPregnancy bool
}

type bundle struct {
	name           string
	confidence     float64
	match          func(text string) bool
	medicines      []cannedMedicine
	homeRemedies   []string
	whatToDo       []string
	whatNotToDo    []string
	specialization string
	whenToSee      string
}

var (
	paracetamol = cannedMedicine{
		Medicine: Medicine{Name: "Paracetamol (Acetaminophen)", Dose: "500-650 mg every 6 hours, max 4 g/day", Notes: "For fever and aches", EvidenceLevel: "Strong"},
		aliases:  []string{"paracetamol", "acetaminophen", "crocin", "dolo"},
	}
	ibuprofen = cannedMedicine{
		Medicine:         Medicine{Name: "Ibuprofen", Dose: "200-400 mg every 6-8 hours with food", Notes: "For pain and inflammation", EvidenceLevel: "Strong"},
		aliases:          []string{"ibuprofen", "nsaid", "brufen", "advil"},
		avoidInPregnancy: true,
	}
	ors = cannedMedicine{
		Medicine: Medicine{Name: "Oral Rehydration Salts (ORS)", Dose: "1 sachet in 1 L clean water, sip frequently", Notes: "Replaces fluids and electrolytes", EvidenceLevel: "Strong"},
		aliases:  []string{"ors", "electral"},
	}
	cetirizine = cannedMedicine{
		Medicine: Medicine{Name: "Cetirizine", Dose: "10 mg once daily", Notes: "For sneezing, runny nose or itching", EvidenceLevel: "Moderate"},
		aliases:  []string{"cetirizine", "antihistamine"},
	}
	salineSpray = cannedMedicine{
		Medicine: Medicine{Name: "Saline nasal spray", Dose: "2 sprays per nostril as needed", Notes: "Relieves congestion", EvidenceLevel: "Supportive"},
		aliases:  []string{"saline"},
	}
	throatLozenge = cannedMedicine{
		Medicine: Medicine{Name: "Throat lozenges", Dose: "1 lozenge every 2-3 hours as needed", Notes: "Soothes sore throat", EvidenceLevel: "Supportive"},
		aliases:  []string{"lozenge"},
	}
	calamine = cannedMedicine{
		Medicine: Medicine{Name: "Calamine lotion", Dose: "Apply thinly to affected skin 2-3 times a day", Notes: "Soothes itching", EvidenceLevel: "Supportive"},
		aliases:  []string{"calamine"},
	}
	pharmacist = cannedMedicine{
		Medicine: Medicine{Name: "Consult a pharmacist", Dose: "Before any OTC medication", Notes: "To avoid drug interactions"},
	}
)

var bundles = []bundle{
	{
		name:       "flu-like illness",
		confidence: 0.45,
		match: func(t string) bool {
			return hasAny(t, "fever", "temperature") && hasAny(t, "cough") && hasAny(t, "sore throat", "throat pain")
		},
		medicines:      []cannedMedicine{paracetamol, throatLozenge},
		homeRemedies:   []string{"Rest and adequate sleep", "Warm fluids such as soups and herbal tea", "Gargle with warm salt water", "Steam inhalation twice a day"},
		whatToDo:       []string{"Stay hydrated", "Monitor temperature twice a day", "Isolate to avoid spreading infection", "See a doctor if fever lasts more than 3 days"},
		whatNotToDo:    []string{"Do not take antibiotics without a prescription", "Do not exceed the maximum paracetamol dose", "Avoid cold drinks and smoking"},
		specialization: "General Physician",
		whenToSee:      "If fever persists beyond 3 days or breathing becomes difficult",
	},
	{
		name:       "common cold",
		confidence: 0.45,
		match: func(t string) bool {
			return hasAny(t, "cough", "sneez") && hasAny(t, "runny nose", "blocked nose", "stuffy nose", "congestion", "cold")
		},
		medicines:      []cannedMedicine{cetirizine, salineSpray},
		homeRemedies:   []string{"Steam inhalation", "Honey with warm water (not for children under 1 year)", "Rest and warm fluids"},
		whatToDo:       []string{"Stay hydrated", "Wash hands frequently", "Use a humidifier if the air is dry"},
		whatNotToDo:    []string{"Do not take antibiotics for a viral cold", "Avoid smoking and dusty environments"},
		specialization: "General Physician",
		whenToSee:      "If symptoms last longer than 10 days or high fever develops",
	},
	{
		name:       "gastrointestinal upset",
		confidence: 0.4,
		match: func(t string) bool {
			return hasAny(t, "vomit", "diarrhea", "diarrhoea", "loose motion", "nausea", "stomach upset")
		},
		medicines:      []cannedMedicine{ors},
		homeRemedies:   []string{"Small frequent sips of fluids", "Bland foods such as rice, bananas and toast", "Coconut water or buttermilk"},
		whatToDo:       []string{"Watch for signs of dehydration (dry mouth, little urine, dizziness)", "Wash hands before eating", "Eat light meals once vomiting settles"},
		whatNotToDo:    []string{"Avoid oily, spicy or street food", "Do not take anti-diarrhoeal medicine if there is blood in stool or high fever", "Avoid dairy until symptoms settle"},
		specialization: "Gastroenterologist",
		whenToSee:      "If unable to keep fluids down for 24 hours, blood in stool, or signs of dehydration",
	},
	{
		name:       "headache",
		confidence: 0.4,
		match: func(t string) bool {
			return hasAny(t, "headache", "migraine", "head ache")
		},
		medicines:      []cannedMedicine{paracetamol, ibuprofen},
		homeRemedies:   []string{"Rest in a quiet, dark room", "Cold or warm compress on the forehead or neck", "Regular meals and hydration"},
		whatToDo:       []string{"Track headache triggers in a diary", "Maintain regular sleep", "Limit screen time"},
		whatNotToDo:    []string{"Do not take painkillers more than 10 days a month", "Avoid skipping meals", "Limit caffeine and alcohol"},
		specialization: "Neurologist",
		whenToSee:      "If headache is sudden and severe, follows a head injury, or comes with fever and stiff neck",
	},
	{
		name:       "fever",
		confidence: 0.4,
		match: func(t string) bool {
			return hasAny(t, "fever", "temperature", "chills")
		},
		medicines:      []cannedMedicine{paracetamol},
		homeRemedies:   []string{"Rest and adequate sleep", "Sponge with lukewarm water", "Light, breathable clothing"},
		whatToDo:       []string{"Drink plenty of fluids", "Check temperature every 6 hours", "Note any rash or new symptoms"},
		whatNotToDo:    []string{"Do not bundle up in heavy blankets", "Do not take antibiotics without a prescription"},
		specialization: "General Physician",
		whenToSee:      "If fever is above 103°F (39.4°C) or lasts more than 3 days",
	},
	{
		name:       "skin irritation",
		confidence: 0.4,
		match: func(t string) bool {
			return hasAny(t, "rash", "itch", "hives", "skin")
		},
		medicines:      []cannedMedicine{cetirizine, calamine},
		homeRemedies:   []string{"Cool compress on the affected area", "Loose cotton clothing", "Fragrance-free moisturiser"},
		whatToDo:       []string{"Identify and avoid possible triggers", "Keep the area clean and dry"},
		whatNotToDo:    []string{"Do not scratch the affected area", "Avoid new soaps or cosmetics until it settles"},
		specialization: "Dermatologist",
		whenToSee:      "If the rash spreads quickly, blisters, or comes with swelling of the face or lips",
	},
}

var genericBundle = bundle{
	name:       "general",
	confidence: 0.35,
	medicines:  []cannedMedicine{pharmacist},
	homeRemedies: []string{
		"Rest and adequate sleep",
		"Stay well hydrated with water or electrolyte beverages",
		"Monitor symptom progression",
		"Maintain comfortable room temperature",
		"Track symptom patterns in a log",
	},
	whatToDo: []string{
		"Contact a healthcare provider for professional evaluation",
		"Keep a symptom diary with timing and severity",
		"Follow any prescribed treatment from your doctor",
		"Maintain good hygiene practices",
	},
	whatNotToDo: []string{
		"Do not self-diagnose or self-treat serious symptoms",
		"Do not ignore worsening symptoms",
		"Do not stop prescribed medications without consulting your doctor",
		"Do not delay seeking professional help if symptoms escalate",
	},
	specialization: "General Physician",
	whenToSee:      "If symptoms worsen or do not improve within a few days",
}

// Heuristic produces a Result without any model. The level always comes from the
// severity table raised by ApplySafetyRules.
func Heuristic(in SymptomInput) Result {
	base := LevelForSeverity(in.Severity)
	esc := ApplySafetyRules(base, in)

	b := selectBundle(in.SymptomsText)

	reason := fmt.Sprintf("Based on reported %s symptoms", strings.TrimSpace(in.Severity))
	if strings.TrimSpace(in.Severity) == "" {
		reason = "Based on reported symptoms"
	}
	if b.name != genericBundle.name {
		reason += fmt.Sprintf(" consistent with %s", b.name)
	}
	if len(esc.Reasons) > 0 {
		reason += "; " + strings.Join(esc.Reasons, "; ")
	}
	reason += ". Professional medical consultation recommended."

	res := Result{
		TriageLevel:  esc.Level,
		TriageReason: reason,
		Recommendations: Recommendations{
			Medicines:            filterMedicines(b.medicines, in),
			HomeRemedies:         append([]string(nil), b.homeRemedies...),
			WhatToDo:             append([]string(nil), b.whatToDo...),
			WhatNotToDo:          append([]string(nil), b.whatNotToDo...),
			DoctorSpecialization: b.specialization,
			FollowUp: &FollowUp{
				WhenToSeeProvider:   b.whenToSee,
				SuggestedDoctorType: b.specialization,
			},
			Disclaimer: heuristicDisclaimer,
		},
		ConfidenceScore: b.confidence,
		Sources:         []string{},
		Disclaimer:      heuristicDisclaimer,
		Source:          SourceHeuristic,
	}
	res.Recommendations.EnsureDefaults()
	res.applyEmergencyShape()
	return res
}

func selectBundle(text string) bundle {
	t := strings.ToLower(text)
	for _, b := range bundles {
		if b.match(t) {
			return b
		}
	}
	return genericBundle
}

func filterMedicines(candidates []cannedMedicine, in SymptomInput) []Medicine {
	allergies := strings.ToLower(in.Allergies)
	out := make([]Medicine, 0, len(candidates))
	for _, c := range candidates {
		if in.IsPregnant && c.avoidInPregnancy {
			continue
		}
		if allergies != "" && hasAny(allergies, c.aliases...) {
			continue
		}
		out = append(out, c.Medicine)
	}
	if len(out) == 0 && len(candidates) > 0 {
		out = append(out, pharmacist.Medicine)
	}
	return out
}

func hasAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
