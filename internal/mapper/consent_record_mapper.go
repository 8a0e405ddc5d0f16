package mapper

import (
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/model"
)

type ConsentRecordMapper struct{}

func NewConsentRecordMapper() *ConsentRecordMapper {
	return &ConsentRecordMapper{}
}

func (m *ConsentRecordMapper) ToEntity(c *model.ConsentRecord) *entity.ConsentRecord {
	if c == nil {
		return nil
	}
	return &entity.ConsentRecord{
		Id:           c.Id,
		UserId:       c.UserId,
		ConsentGiven: c.ConsentGiven,
		ConsentText:  c.ConsentText,
		UserAgent:    c.UserAgent,
		IpHash:       c.IpHash,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ConsentRecordMapper) ToModel(c *entity.ConsentRecord) *model.ConsentRecord {
	if c == nil {
		return nil
	}
	return &model.ConsentRecord{
		Id:           c.Id,
		UserId:       c.UserId,
		ConsentGiven: c.ConsentGiven,
		ConsentText:  c.ConsentText,
		UserAgent:    c.UserAgent,
		IpHash:       c.IpHash,
		CreatedAt:    c.CreatedAt,
	}
}
