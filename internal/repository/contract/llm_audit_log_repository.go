package contract

import (
	"context"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/repository/specification"
)

// LlmAuditLogRepository is write-once.
type LlmAuditLogRepository interface {
	Create(ctx context.Context, log *entity.LlmAuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LlmAuditLog, error)
}
