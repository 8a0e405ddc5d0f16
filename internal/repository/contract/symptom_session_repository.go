package contract

import (
	"context"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/repository/specification"
)

type SymptomSessionRepository interface {
	Create(ctx context.Context, session *entity.SymptomSession) error
	// SaveResult writes only the triage columns.
	SaveResult(ctx context.Context, session *entity.SymptomSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SymptomSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SymptomSession, error)
}
