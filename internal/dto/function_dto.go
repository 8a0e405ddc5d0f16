package dto

import (
	"triage-assist-be/pkg/ocr"
	"triage-assist-be/pkg/triage"
)

// AnalyzeSymptomsRequest follows the hosted-function body convention.
type AnalyzeSymptomsRequest struct {
	SessionId  string              `json:"sessionId" validate:"omitempty,uuid"`
	Symptoms   triage.SymptomInput `json:"symptoms"`
	ReportData map[string]any      `json:"reportData"`
}

// AnalyzeSymptomsResponse is the bare analysis plus an error string when the
// request could not be processed.
type AnalyzeSymptomsResponse struct {
	triage.Result
	Error string `json:"error,omitempty"`
}

type ProcessOcrRequest struct {
	FileId string `json:"fileId" validate:"required,uuid"`
}

type ProcessOcrResponse struct {
	Success bool       `json:"success"`
	Data    ocr.Result `json:"data"`
}

type FunctionErrorResponse struct {
	Error string `json:"error"`
}
