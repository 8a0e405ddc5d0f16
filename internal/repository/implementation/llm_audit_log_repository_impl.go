package implementation

import (
	"context"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/mapper"
	"triage-assist-be/internal/model"
	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LlmAuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LlmAuditLogMapper
}

func NewLlmAuditLogRepository(db *gorm.DB) contract.LlmAuditLogRepository {
	return &LlmAuditLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewLlmAuditLogMapper(),
	}
}

func (r *LlmAuditLogRepositoryImpl) Create(ctx context.Context, log *entity.LlmAuditLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *LlmAuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LlmAuditLog, error) {
	var models []*model.LlmAuditLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.LlmAuditLog, len(models))
	for i, m := range models {
		out[i] = r.mapper.ToEntity(m)
	}
	return out, nil
}
