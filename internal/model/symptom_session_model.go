package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SymptomSession struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID      `gorm:"type:uuid;not null;index:idx_symptom_sessions_user_created,priority:1"`
	SymptomsText       string         `gorm:"type:text;not null"`
	Severity           string         `gorm:"type:varchar(32);not null"`
	Onset              string         `gorm:"type:varchar(255)"`
	Duration           string         `gorm:"type:varchar(255)"`
	ExistingConditions string         `gorm:"type:text"`
	CurrentMedications string         `gorm:"type:text"`
	Allergies          string         `gorm:"type:text"`
	Age                int            `gorm:"not null"`
	IsPregnant         bool           `gorm:"not null;default:false"`
	TriageLevel        *string        `gorm:"type:varchar(32);check:chk_triage_level,triage_level IN ('emergency','urgent-visit','see-doctor','self-care')"`
	TriageReason       *string        `gorm:"type:text"`
	ConfidenceScore    *float64       `gorm:"type:numeric(3,2)"`
	Recommendations    datatypes.JSON `gorm:"type:jsonb"`
	AnalysisSource     *string        `gorm:"type:varchar(32)"`
	CreatedAt          time.Time      `gorm:"autoCreateTime;index:idx_symptom_sessions_user_created,priority:2,sort:desc"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
}

func (SymptomSession) TableName() string {
	return "symptom_sessions"
}
