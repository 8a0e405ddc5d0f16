package dto

import (
	"time"

	"triage-assist-be/pkg/triage"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	SymptomsText       string `json:"symptoms_text" validate:"required,min=10,max=5000"`
	Severity           string `json:"severity" validate:"required,oneof=mild moderate significant severe emergency-level"`
	Onset              string `json:"onset" validate:"max=255"`
	Duration           string `json:"duration" validate:"max=255"`
	ExistingConditions string `json:"existing_conditions" validate:"max=2000"`
	CurrentMedications string `json:"current_medications" validate:"max=2000"`
	Allergies          string `json:"allergies" validate:"max=2000"`
	Age                int    `json:"age" validate:"required,gte=1,lte=120"`
	IsPregnant         bool   `json:"is_pregnant"`
}

func (r *CreateSessionRequest) Input() triage.SymptomInput {
	return triage.SymptomInput{
		SymptomsText:       r.SymptomsText,
		Severity:           r.Severity,
		Onset:              r.Onset,
		Duration:           r.Duration,
		ExistingConditions: r.ExistingConditions,
		CurrentMedications: r.CurrentMedications,
		Allergies:          r.Allergies,
		Age:                r.Age,
		IsPregnant:         r.IsPregnant,
	}
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionResponse struct {
	Id              uuid.UUID               `json:"id"`
	Input           triage.SymptomInput     `json:"input"`
	Status          string                  `json:"status"`
	TriageLevel     *triage.Level           `json:"triage_level"`
	TriageReason    *string                 `json:"triage_reason"`
	ConfidenceScore *float64                `json:"confidence_score"`
	Recommendations *triage.Recommendations `json:"recommendations"`
	AnalysisSource  *string                 `json:"analysis_source"`
	Reports         []*ReportResponse       `json:"reports,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       *time.Time              `json:"updated_at"`
}

type SessionHistoryItem struct {
	Id           uuid.UUID     `json:"id"`
	SymptomsText string        `json:"symptoms_text"`
	Severity     string        `json:"severity"`
	Status       string        `json:"status"`
	TriageLevel  *triage.Level `json:"triage_level"`
	CreatedAt    time.Time     `json:"created_at"`
}

type SessionStatusResponse struct {
	Id          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	TriageLevel *string   `json:"triage_level"`
}

type AnalyzeSessionResponse struct {
	SessionId uuid.UUID     `json:"session_id"`
	Result    triage.Result `json:"result"`
}
