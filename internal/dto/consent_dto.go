package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecordConsentRequest struct {
	ConsentGiven *bool  `json:"consent_given" validate:"required"`
	ConsentText  string `json:"consent_text" validate:"required,max=5000"`
}

type ConsentResponse struct {
	Id           uuid.UUID `json:"id"`
	ConsentGiven bool      `json:"consent_given"`
	ConsentText  string    `json:"consent_text"`
	CreatedAt    time.Time `json:"created_at"`
}
