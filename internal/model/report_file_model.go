package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportFile struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	FileName   string         `gorm:"type:varchar(255);not null"`
	FilePath   string         `gorm:"type:text;not null"`
	FileType   string         `gorm:"type:varchar(64);not null"`
	FileSize   int64          `gorm:"not null"`
	OcrStatus  string         `gorm:"type:varchar(16);not null;default:pending;check:chk_ocr_status,ocr_status IN ('pending','completed','failed')"`
	OcrText    *string        `gorm:"type:text"`
	ParsedData datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`

	Session *SymptomSession `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (ReportFile) TableName() string {
	return "report_files"
}
