package contract

import (
	"context"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReportFileRepository interface {
	Create(ctx context.Context, file *entity.ReportFile) error
	// MarkCompleted and MarkFailed only touch rows that are still pending and
	// report whether a row changed.
	MarkCompleted(ctx context.Context, id uuid.UUID, ocrText string, parsed map[string]any) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportFile, error)
}
