package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConsentRecord struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ConsentGiven bool
	ConsentText  string
	UserAgent    string
	IpHash       string
	CreatedAt    time.Time
}
