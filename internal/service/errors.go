package service

import "github.com/gofiber/fiber/v2"

type serviceError struct {
	code int
	msg  string
}

func (e *serviceError) Error() string   { return e.msg }
func (e *serviceError) StatusCode() int { return e.code }

func newError(code int, msg string) error {
	return &serviceError{code: code, msg: msg}
}

var (
	ErrSessionNotFound     = newError(fiber.StatusNotFound, "session not found")
	ErrReportNotFound      = newError(fiber.StatusNotFound, "report not found")
	ErrConsentNotFound     = newError(fiber.StatusNotFound, "no consent on record")
	ErrConsentRequired     = newError(fiber.StatusForbidden, "consent is required before submitting symptoms")
	ErrFileTooLarge        = newError(fiber.StatusRequestEntityTooLarge, "file exceeds the 10MB limit")
	ErrUnsupportedFileType = newError(fiber.StatusUnsupportedMediaType, "only JPEG, PNG and PDF files are accepted")
	ErrOcrNotPending       = newError(fiber.StatusConflict, "report has already been processed")
)
