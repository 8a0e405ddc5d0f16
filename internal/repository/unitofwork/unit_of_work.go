package unitofwork

import (
	"context"

	"triage-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SymptomSessionRepository() contract.SymptomSessionRepository
	ReportFileRepository() contract.ReportFileRepository
	ConsentRecordRepository() contract.ConsentRecordRepository
	LlmAuditLogRepository() contract.LlmAuditLogRepository
}
