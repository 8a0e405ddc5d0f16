package implementation

import (
	"context"
	"errors"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/mapper"
	"triage-assist-be/internal/model"
	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportFileMapper
}

func NewReportFileRepository(db *gorm.DB) contract.ReportFileRepository {
	return &ReportFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportFileMapper(),
	}
}

func (r *ReportFileRepositoryImpl) Create(ctx context.Context, file *entity.ReportFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Omit("Session").Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReportFileRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, ocrText string, parsed map[string]any) (bool, error) {
	// parsed_data is always a JSON object once completed
	if parsed == nil {
		parsed = map[string]any{}
	}
	done := &entity.ReportFile{OcrStatus: entity.OcrStatusPending}
	if err := done.Complete(ocrText, parsed); err != nil {
		return false, err
	}
	m := r.mapper.ToModel(done)

	return r.transition(ctx, id, map[string]interface{}{
		"ocr_status":  m.OcrStatus,
		"ocr_text":    m.OcrText,
		"parsed_data": m.ParsedData,
	})
}

func (r *ReportFileRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, map[string]interface{}{
		"ocr_status": string(entity.OcrStatusFailed),
	})
}

// transition is the storage half of the pending-only rule: a row that already
// left pending is never rewritten.
func (r *ReportFileRepositoryImpl) transition(ctx context.Context, id uuid.UUID, values map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ReportFile{}).
		Where("id = ? AND ocr_status = ?", id, string(entity.OcrStatusPending)).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReportFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportFile, error) {
	var m model.ReportFile
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReportFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportFile, error) {
	var models []*model.ReportFile
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
