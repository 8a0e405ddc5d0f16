package implementation

import (
	"context"
	"errors"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/mapper"
	"triage-assist-be/internal/model"
	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsentRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConsentRecordMapper
}

func NewConsentRecordRepository(db *gorm.DB) contract.ConsentRecordRepository {
	return &ConsentRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewConsentRecordMapper(),
	}
}

func (r *ConsentRecordRepositoryImpl) Create(ctx context.Context, record *entity.ConsentRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConsentRecordRepositoryImpl) FindLatest(ctx context.Context, userId uuid.UUID) (*entity.ConsentRecord, error) {
	var m model.ConsentRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Scopes(scope.OrderByCreatedDesc).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
