package mapper

import (
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/model"
)

type ReportFileMapper struct{}

func NewReportFileMapper() *ReportFileMapper {
	return &ReportFileMapper{}
}

func (m *ReportFileMapper) ToEntity(f *model.ReportFile) *entity.ReportFile {
	if f == nil {
		return nil
	}
	return &entity.ReportFile{
		Id:         f.Id,
		SessionId:  f.SessionId,
		UserId:     f.UserId,
		FileName:   f.FileName,
		FilePath:   f.FilePath,
		FileType:   f.FileType,
		FileSize:   f.FileSize,
		OcrStatus:  entity.OcrStatus(f.OcrStatus),
		OcrText:    f.OcrText,
		ParsedData: toMap(f.ParsedData),
		CreatedAt:  f.CreatedAt,
	}
}

func (m *ReportFileMapper) ToModel(f *entity.ReportFile) *model.ReportFile {
	if f == nil {
		return nil
	}
	status := f.OcrStatus
	if status == "" {
		status = entity.OcrStatusPending
	}
	out := &model.ReportFile{
		Id:        f.Id,
		SessionId: f.SessionId,
		UserId:    f.UserId,
		FileName:  f.FileName,
		FilePath:  f.FilePath,
		FileType:  f.FileType,
		FileSize:  f.FileSize,
		OcrStatus: string(status),
		OcrText:   f.OcrText,
		CreatedAt: f.CreatedAt,
	}
	if f.ParsedData != nil {
		out.ParsedData = toJSON(f.ParsedData)
	}
	return out
}

func (m *ReportFileMapper) ToEntities(files []*model.ReportFile) []*entity.ReportFile {
	entities := make([]*entity.ReportFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
