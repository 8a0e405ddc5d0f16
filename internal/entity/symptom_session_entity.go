package entity

import (
	"time"

	"triage-assist-be/pkg/triage"

	"github.com/google/uuid"
)

type SymptomSession struct {
	Id     uuid.UUID
	UserId uuid.UUID
	Input  triage.SymptomInput

	// Triage fields stay nil until an analysis has been stored.
	TriageLevel     *triage.Level
	TriageReason    *string
	ConfidenceScore *float64
	Recommendations *triage.Recommendations
	AnalysisSource  *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Pending is true until triage fields are written. A session is never "failed".
func (s *SymptomSession) Pending() bool {
	return s.TriageLevel == nil
}

// ApplyResult copies an analysis result onto the session.
func (s *SymptomSession) ApplyResult(res triage.Result, at time.Time) {
	level := res.TriageLevel
	reason := res.TriageReason
	score := res.ConfidenceScore
	recs := res.Recommendations
	recs.EnsureDefaults()
	source := res.Source

	s.TriageLevel = &level
	s.TriageReason = &reason
	s.ConfidenceScore = &score
	s.Recommendations = &recs
	s.AnalysisSource = &source
	s.UpdatedAt = &at
}
