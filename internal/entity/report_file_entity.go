package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OcrStatus string

const (
	OcrStatusPending   OcrStatus = "pending"
	OcrStatusCompleted OcrStatus = "completed"
	OcrStatusFailed    OcrStatus = "failed"
)

var ErrInvalidTransition = errors.New("invalid ocr status transition")

// Terminal reports whether no further transition is allowed.
func (s OcrStatus) Terminal() bool {
	return s == OcrStatusCompleted || s == OcrStatusFailed
}

type ReportFile struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	UserId     uuid.UUID
	FileName   string
	FilePath   string
	FileType   string
	FileSize   int64
	OcrStatus  OcrStatus
	OcrText    *string
	ParsedData map[string]any
	CreatedAt  time.Time
}

// Transition moves a pending file to completed or failed. Everything else is rejected.
func (f *ReportFile) Transition(to OcrStatus) error {
	if f.OcrStatus != OcrStatusPending || !to.Terminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.OcrStatus, to)
	}
	f.OcrStatus = to
	return nil
}

// Complete records the OCR output and moves the file to completed.
func (f *ReportFile) Complete(text string, parsed map[string]any) error {
	if err := f.Transition(OcrStatusCompleted); err != nil {
		return err
	}
	f.OcrText = &text
	f.ParsedData = parsed
	return nil
}
