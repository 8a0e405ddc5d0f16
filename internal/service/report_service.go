package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/repository/specification"
	"triage-assist-be/internal/repository/unitofwork"
	"triage-assist-be/pkg/storage"

	"github.com/google/uuid"
)

// MaxReportSize is the upload limit for a single report.
const MaxReportSize = 10 << 20

var allowedReportTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type IReportService interface {
	Upload(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UploadReportRequest) (*dto.ReportResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.ReportResponse, error)
}

type reportService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobs            storage.BlobStore
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	blobs storage.BlobStore,
	publisherService IPublisherService,
	log logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory:       uowFactory,
		blobs:            blobs,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *reportService) Upload(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UploadReportRequest) (*dto.ReportResponse, error) {
	if !allowedReportTypes[req.ContentType] {
		return nil, ErrUnsupportedFileType
	}
	if len(req.Data) > MaxReportSize {
		return nil, ErrFileTooLarge
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SymptomSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	key := storage.ObjectKey(userId.String(), req.FileName, now)
	if err := s.blobs.Put(ctx, key, req.ContentType, req.Data); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	file := entity.ReportFile{
		Id:        uuid.New(),
		SessionId: session.Id,
		UserId:    userId,
		FileName:  req.FileName,
		FilePath:  key,
		FileType:  req.ContentType,
		FileSize:  int64(len(req.Data)),
		OcrStatus: entity.OcrStatusPending,
		CreatedAt: now,
	}
	if err := uow.ReportFileRepository().Create(ctx, &file); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.ProcessOcrMessage{FileId: file.Id})
	if err != nil {
		return nil, err
	}
	// The record stays pending if the queue rejects the job; process-ocr can pick it up.
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Error("REPORT", "Failed to enqueue OCR job", map[string]interface{}{
			"file_id": file.Id.String(),
			"error":   err.Error(),
		})
	}

	s.logger.Info("REPORT", "Report uploaded", map[string]interface{}{
		"file_id":    file.Id.String(),
		"session_id": session.Id.String(),
		"file_type":  file.FileType,
		"file_size":  file.FileSize,
	})

	return toReportResponse(&file), nil
}

func (s *reportService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.ReportFileRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrReportNotFound
	}
	return toReportResponse(file), nil
}

func toReportResponse(f *entity.ReportFile) *dto.ReportResponse {
	return &dto.ReportResponse{
		Id:         f.Id,
		SessionId:  f.SessionId,
		FileName:   f.FileName,
		FileType:   f.FileType,
		FileSize:   f.FileSize,
		OcrStatus:  string(f.OcrStatus),
		OcrText:    f.OcrText,
		ParsedData: f.ParsedData,
		CreatedAt:  f.CreatedAt,
	}
}
