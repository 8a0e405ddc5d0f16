package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsentRecord rows are never updated.
type ConsentRecord struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index:idx_consent_user_created,priority:1"`
	ConsentGiven bool      `gorm:"not null"`
	ConsentText  string    `gorm:"type:text;not null"`
	UserAgent    string    `gorm:"type:text"`
	IpHash       string    `gorm:"type:varchar(64)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_consent_user_created,priority:2,sort:desc"`
}

func (ConsentRecord) TableName() string {
	return "consent_records"
}
