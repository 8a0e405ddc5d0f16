package contract

import (
	"context"

	"triage-assist-be/internal/entity"

	"github.com/google/uuid"
)

// ConsentRecordRepository is append-only.
type ConsentRecordRepository interface {
	Create(ctx context.Context, record *entity.ConsentRecord) error
	FindLatest(ctx context.Context, userId uuid.UUID) (*entity.ConsentRecord, error)
}
