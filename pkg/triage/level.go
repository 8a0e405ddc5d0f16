package triage

import "strings"

// Level is the categorical outcome of an analysis.
type Level string

const (
	LevelSelfCare    Level = "self-care"
	LevelSeeDoctor   Level = "see-doctor"
	LevelUrgentVisit Level = "urgent-visit"
	LevelEmergency   Level = "emergency"
)

// Levels lists every valid level from least to most urgent.
var Levels = []Level{LevelSelfCare, LevelSeeDoctor, LevelUrgentVisit, LevelEmergency}

// Rank orders levels by urgency. Unknown levels rank as see-doctor.
func (l Level) Rank() int {
	switch l {
	case LevelSelfCare:
		return 0
	case LevelSeeDoctor:
		return 1
	case LevelUrgentVisit:
		return 2
	case LevelEmergency:
		return 3
	default:
		return 1
	}
}

func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

func (l Level) String() string {
	return string(l)
}

// ParseLevel accepts the canonical values plus the spellings models tend to produce
// ("Urgent Visit", "urgent_visit", "SELF CARE", "urgent").
func ParseLevel(s string) (Level, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for strings.Contains(norm, "--") {
		norm = strings.ReplaceAll(norm, "--", "-")
	}

	switch norm {
	case "emergency", "emergency-level":
		return LevelEmergency, true
	case "urgent-visit", "urgent", "urgent-care":
		return LevelUrgentVisit, true
	case "see-doctor", "see-a-doctor", "doctor", "routine":
		return LevelSeeDoctor, true
	case "self-care", "selfcare", "home-care":
		return LevelSelfCare, true
	}
	return "", false
}

// Max returns the more urgent of a and b.
func Max(a, b Level) Level {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Escalate raises l by steps levels without passing ceiling. A level already above
// the ceiling is returned unchanged, so escalation never lowers anything.
func Escalate(l Level, steps int, ceiling Level) Level {
	if steps <= 0 || l.Rank() >= ceiling.Rank() {
		return l
	}
	target := l.Rank() + steps
	if target > ceiling.Rank() {
		target = ceiling.Rank()
	}
	return Levels[target]
}
