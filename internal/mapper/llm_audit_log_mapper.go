package mapper

import (
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/model"
)

type LlmAuditLogMapper struct{}

func NewLlmAuditLogMapper() *LlmAuditLogMapper {
	return &LlmAuditLogMapper{}
}

func (m *LlmAuditLogMapper) ToEntity(l *model.LlmAuditLog) *entity.LlmAuditLog {
	if l == nil {
		return nil
	}
	return &entity.LlmAuditLog{
		Id:           l.Id,
		SessionId:    l.SessionId,
		UserId:       l.UserId,
		PromptData:   toMap(l.PromptData),
		ResponseData: toMap(l.ResponseData),
		ModelUsed:    l.ModelUsed,
		TokensUsed:   l.TokensUsed,
		CreatedAt:    l.CreatedAt,
	}
}

func (m *LlmAuditLogMapper) ToModel(l *entity.LlmAuditLog) *model.LlmAuditLog {
	if l == nil {
		return nil
	}
	prompt := toJSON(l.PromptData)
	if prompt == nil {
		prompt = []byte("{}")
	}
	return &model.LlmAuditLog{
		Id:           l.Id,
		SessionId:    l.SessionId,
		UserId:       l.UserId,
		PromptData:   prompt,
		ResponseData: toJSON(l.ResponseData),
		ModelUsed:    l.ModelUsed,
		TokensUsed:   l.TokensUsed,
		CreatedAt:    l.CreatedAt,
	}
}
