package service

import (
	"context"
	"fmt"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/repository/specification"
	"triage-assist-be/internal/repository/unitofwork"
	"triage-assist-be/pkg/events"
	"triage-assist-be/pkg/ocr"
	"triage-assist-be/pkg/storage"

	"github.com/google/uuid"
)

// DocumentExtractor is satisfied by *ocr.Extractor.
type DocumentExtractor interface {
	Extract(ctx context.Context, mimeType string, document []byte) (ocr.Result, string, error)
}

type IOcrService interface {
	// Process is the queue path and trusts the job payload.
	Process(ctx context.Context, fileId uuid.UUID) (*ocr.Result, error)
	// ProcessOwned only touches files uploaded by userId.
	ProcessOwned(ctx context.Context, userId, fileId uuid.UUID) (*ocr.Result, error)
}

type ocrService struct {
	uowFactory     unitofwork.RepositoryFactory
	blobs          storage.BlobStore
	extractor      DocumentExtractor
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewOcrService(
	uowFactory unitofwork.RepositoryFactory,
	blobs storage.BlobStore,
	extractor DocumentExtractor,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IOcrService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &ocrService{
		uowFactory:     uowFactory,
		blobs:          blobs,
		extractor:      extractor,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *ocrService) Process(ctx context.Context, fileId uuid.UUID) (*ocr.Result, error) {
	return s.process(ctx, specification.ByID{ID: fileId})
}

func (s *ocrService) ProcessOwned(ctx context.Context, userId, fileId uuid.UUID) (*ocr.Result, error) {
	return s.process(ctx, specification.ByID{ID: fileId}, specification.UserOwnedBy{UserID: userId})
}

// process runs a pending report through OCR once. Any failure after the record is
// loaded leaves the file in the failed state.
func (s *ocrService) process(ctx context.Context, specs ...specification.Specification) (*ocr.Result, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ReportFileRepository()

	file, err := repo.FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrReportNotFound
	}
	if file.OcrStatus != entity.OcrStatusPending {
		return nil, ErrOcrNotPending
	}

	data, err := s.blobs.Get(ctx, file.FilePath)
	if err != nil {
		return nil, s.fail(ctx, file, fmt.Errorf("download report: %w", err))
	}

	result, _, err := s.extractor.Extract(ctx, file.FileType, data)
	if err != nil {
		return nil, s.fail(ctx, file, err)
	}

	changed, err := repo.MarkCompleted(ctx, file.Id, result.ExtractedText, result.StructuredData)
	if err != nil {
		return nil, s.fail(ctx, file, fmt.Errorf("store ocr result: %w", err))
	}
	if !changed {
		return nil, ErrOcrNotPending
	}

	s.logger.Info("OCR", "Report processed", map[string]interface{}{
		"file_id":    file.Id.String(),
		"session_id": file.SessionId.String(),
		"text_len":   len(result.ExtractedText),
	})
	s.publish(ctx, events.OcrCompleted(file.Id.String(), file.SessionId.String()))

	return &result, nil
}

// fail records the terminal state even when ctx is already cancelled.
func (s *ocrService) fail(ctx context.Context, file *entity.ReportFile, cause error) error {
	ctx = context.WithoutCancel(ctx)

	s.logger.Error("OCR", "Report processing failed", map[string]interface{}{
		"file_id": file.Id.String(),
		"error":   cause.Error(),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := uow.ReportFileRepository().MarkFailed(ctx, file.Id); err != nil {
		s.logger.Error("OCR", "Failed to mark report as failed", map[string]interface{}{
			"file_id": file.Id.String(),
			"error":   err.Error(),
		})
	}
	s.publish(ctx, events.OcrFailed(file.Id.String(), file.SessionId.String(), cause.Error()))
	return cause
}

func (s *ocrService) publish(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("OCR", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
