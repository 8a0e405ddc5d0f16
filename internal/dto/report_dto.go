package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReportResponse struct {
	Id         uuid.UUID      `json:"id"`
	SessionId  uuid.UUID      `json:"session_id"`
	FileName   string         `json:"file_name"`
	FileType   string         `json:"file_type"`
	FileSize   int64          `json:"file_size"`
	OcrStatus  string         `json:"ocr_status"`
	OcrText    *string        `json:"ocr_text"`
	ParsedData map[string]any `json:"parsed_data"`
	CreatedAt  time.Time      `json:"created_at"`
}

// UploadReportRequest is assembled by the controller from the multipart form.
type UploadReportRequest struct {
	FileName    string `validate:"required,max=255"`
	ContentType string `validate:"required"`
	Data        []byte `validate:"required"`
}

// ProcessOcrMessage is the payload queued for the OCR consumer.
type ProcessOcrMessage struct {
	FileId uuid.UUID `json:"file_id"`
}
