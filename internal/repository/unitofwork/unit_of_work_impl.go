package unitofwork

import (
	"context"
	"fmt"

	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // non-nil between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is a no-op after Commit so it can be deferred.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) SymptomSessionRepository() contract.SymptomSessionRepository {
	return implementation.NewSymptomSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReportFileRepository() contract.ReportFileRepository {
	return implementation.NewReportFileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConsentRecordRepository() contract.ConsentRecordRepository {
	return implementation.NewConsentRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LlmAuditLogRepository() contract.LlmAuditLogRepository {
	return implementation.NewLlmAuditLogRepository(u.getDB())
}
