package implementation

import (
	"context"
	"errors"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/mapper"
	"triage-assist-be/internal/model"
	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SymptomSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SymptomSessionMapper
}

func NewSymptomSessionRepository(db *gorm.DB) contract.SymptomSessionRepository {
	return &SymptomSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSymptomSessionMapper(),
	}
}

func (r *SymptomSessionRepositoryImpl) Create(ctx context.Context, session *entity.SymptomSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SymptomSessionRepositoryImpl) SaveResult(ctx context.Context, session *entity.SymptomSession) error {
	m := r.mapper.ToModel(session)
	res := r.db.WithContext(ctx).
		Model(&model.SymptomSession{}).
		Where("id = ?", session.Id).
		Updates(map[string]interface{}{
			"triage_level":     m.TriageLevel,
			"triage_reason":    m.TriageReason,
			"confidence_score": m.ConfidenceScore,
			"recommendations":  m.Recommendations,
			"analysis_source":  m.AnalysisSource,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SymptomSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SymptomSession, error) {
	var m model.SymptomSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SymptomSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SymptomSession, error) {
	var models []*model.SymptomSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
