package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LlmAuditLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    *uuid.UUID     `gorm:"type:uuid;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	PromptData   datatypes.JSON `gorm:"type:jsonb;not null"`
	ResponseData datatypes.JSON `gorm:"type:jsonb"`
	ModelUsed    string         `gorm:"type:varchar(128)"`
	TokensUsed   int            `gorm:"not null;default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (LlmAuditLog) TableName() string {
	return "llm_audit_logs"
}
