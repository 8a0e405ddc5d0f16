package mapper

import (
	"encoding/json"
	"time"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/model"
	"triage-assist-be/pkg/triage"
)

type SymptomSessionMapper struct{}

func NewSymptomSessionMapper() *SymptomSessionMapper {
	return &SymptomSessionMapper{}
}

func (m *SymptomSessionMapper) ToEntity(s *model.SymptomSession) *entity.SymptomSession {
	if s == nil {
		return nil
	}

	var level *triage.Level
	if s.TriageLevel != nil {
		// the column check constraint keeps this one of the four levels
		l, ok := triage.ParseLevel(*s.TriageLevel)
		if !ok {
			l = triage.Level(*s.TriageLevel)
		}
		level = &l
	}

	var recs *triage.Recommendations
	if len(s.Recommendations) > 0 {
		var r triage.Recommendations
		if err := json.Unmarshal(s.Recommendations, &r); err == nil {
			r.EnsureDefaults()
			recs = &r
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.SymptomSession{
		Id:     s.Id,
		UserId: s.UserId,
		Input: triage.SymptomInput{
			SymptomsText:       s.SymptomsText,
			Severity:           s.Severity,
			Onset:              s.Onset,
			Duration:           s.Duration,
			ExistingConditions: s.ExistingConditions,
			CurrentMedications: s.CurrentMedications,
			Allergies:          s.Allergies,
			Age:                s.Age,
			IsPregnant:         s.IsPregnant,
		},
		TriageLevel:     level,
		TriageReason:    s.TriageReason,
		ConfidenceScore: s.ConfidenceScore,
		Recommendations: recs,
		AnalysisSource:  s.AnalysisSource,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *SymptomSessionMapper) ToModel(s *entity.SymptomSession) *model.SymptomSession {
	if s == nil {
		return nil
	}

	var level *string
	if s.TriageLevel != nil {
		l := s.TriageLevel.String()
		level = &l
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	out := &model.SymptomSession{
		Id:                 s.Id,
		UserId:             s.UserId,
		SymptomsText:       s.Input.SymptomsText,
		Severity:           s.Input.Severity,
		Onset:              s.Input.Onset,
		Duration:           s.Input.Duration,
		ExistingConditions: s.Input.ExistingConditions,
		CurrentMedications: s.Input.CurrentMedications,
		Allergies:          s.Input.Allergies,
		Age:                s.Input.Age,
		IsPregnant:         s.Input.IsPregnant,
		TriageLevel:        level,
		TriageReason:       s.TriageReason,
		ConfidenceScore:    s.ConfidenceScore,
		AnalysisSource:     s.AnalysisSource,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          updatedAt,
	}
	if s.Recommendations != nil {
		out.Recommendations = toJSON(s.Recommendations)
	}
	return out
}

func (m *SymptomSessionMapper) ToEntities(sessions []*model.SymptomSession) []*entity.SymptomSession {
	entities := make([]*entity.SymptomSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
