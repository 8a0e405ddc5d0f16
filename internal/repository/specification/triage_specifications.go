package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByOcrStatus struct {
	Status string
}

func (s ByOcrStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ocr_status = ?", s.Status)
}

// Triaged keeps sessions whose analysis has been stored.
type Triaged struct{}

func (Triaged) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("triage_level IS NOT NULL")
}
