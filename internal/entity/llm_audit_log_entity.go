package entity

import (
	"time"

	"github.com/google/uuid"
)

type LlmAuditLog struct {
	Id           uuid.UUID
	SessionId    *uuid.UUID
	UserId       uuid.UUID
	PromptData   map[string]any
	ResponseData map[string]any
	ModelUsed    string
	TokensUsed   int
	CreatedAt    time.Time
}
