package service

import (
	"context"
	"time"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/repository/cache"
	"triage-assist-be/internal/repository/specification"
	"triage-assist-be/internal/repository/unitofwork"
	"triage-assist-be/pkg/events"
	"triage-assist-be/pkg/triage"

	"github.com/google/uuid"
)

// TriageAnalyzer is satisfied by *triage.Analyzer.
type TriageAnalyzer interface {
	Analyze(ctx context.Context, req triage.Request) triage.Result
}

type IAnalysisService interface {
	// AnalyzeSession analyzes a stored session with its completed reports attached.
	AnalyzeSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.AnalyzeSessionResponse, error)
	// Analyze serves the analyze-symptoms function. The result is persisted when
	// the request names a session.
	Analyze(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeSymptomsRequest) (triage.Result, error)
}

type analysisService struct {
	uowFactory     unitofwork.RepositoryFactory
	analyzer       TriageAnalyzer
	statusCache    *cache.SessionStatusCache
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	analyzer TriageAnalyzer,
	statusCache *cache.SessionStatusCache,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAnalysisService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &analysisService{
		uowFactory:     uowFactory,
		analyzer:       analyzer,
		statusCache:    statusCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *analysisService) AnalyzeSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.AnalyzeSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	reportData, err := s.completedReportData(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	res := s.run(ctx, userId, &session.Id, session.Input, reportData)
	if err := s.persist(ctx, uow, session, res); err != nil {
		return nil, err
	}

	return &dto.AnalyzeSessionResponse{SessionId: session.Id, Result: res}, nil
}

func (s *analysisService) Analyze(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeSymptomsRequest) (triage.Result, error) {
	if req.SessionId == "" {
		return s.run(ctx, userId, nil, req.Symptoms, req.ReportData), nil
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return triage.Result{}, ErrSessionNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return triage.Result{}, err
	}

	input := req.Symptoms
	if input.SymptomsText == "" {
		input = session.Input
	}
	reportData := req.ReportData
	if len(reportData) == 0 {
		if reportData, err = s.completedReportData(ctx, uow, session.Id); err != nil {
			return triage.Result{}, err
		}
	}

	res := s.run(ctx, userId, &session.Id, input, reportData)
	if err := s.persist(ctx, uow, session, res); err != nil {
		return res, err
	}
	return res, nil
}

func (s *analysisService) run(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, input triage.SymptomInput, reportData map[string]any) triage.Result {
	return s.analyzer.Analyze(ctx, triage.Request{
		Input:      input,
		ReportData: reportData,
		OnAttempt: func(ctx context.Context, a triage.Attempt) {
			s.audit(ctx, userId, sessionId, input, a)
		},
	})
}

// audit records one provider attempt. Audit failures never fail the analysis.
func (s *analysisService) audit(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, input triage.SymptomInput, a triage.Attempt) {
	response := map[string]any{
		"raw_response": a.RawResponse,
		"duration_ms":  a.Duration.Milliseconds(),
	}
	if a.Parsed != nil {
		response["parsed"] = a.Parsed
	}
	if a.Err != nil {
		response["error"] = a.Err.Error()
	}

	model := a.Model
	if model == "" {
		model = a.Provider
	}

	log := entity.LlmAuditLog{
		Id:        uuid.New(),
		SessionId: sessionId,
		UserId:    userId,
		PromptData: map[string]any{
			"provider":      a.Provider,
			"system_prompt": a.SystemPrompt,
			"user_prompt":   a.UserPrompt,
			"symptoms":      input,
		},
		ResponseData: response,
		ModelUsed:    model,
		TokensUsed:   a.TokensUsed,
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LlmAuditLogRepository().Create(ctx, &log); err != nil {
		s.logger.Warn("ANALYSIS", "Failed to write audit log", map[string]interface{}{
			"provider": a.Provider,
			"error":    err.Error(),
		})
	}
}

func (s *analysisService) completedReportData(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (map[string]any, error) {
	files, err := uow.ReportFileRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByOcrStatus{Status: string(entity.OcrStatusCompleted)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	reports := make([]map[string]any, 0, len(files))
	for _, f := range files {
		text := ""
		if f.OcrText != nil {
			text = *f.OcrText
		}
		reports = append(reports, map[string]any{
			"file_name":       f.FileName,
			"extracted_text":  text,
			"structured_data": f.ParsedData,
		})
	}
	return map[string]any{"reports": reports}, nil
}

func (s *analysisService) persist(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.SymptomSession, res triage.Result) error {
	session.ApplyResult(res, time.Now())
	if err := uow.SymptomSessionRepository().SaveResult(ctx, session); err != nil {
		return err
	}

	if err := s.statusCache.Set(ctx, statusEntry(session)); err != nil {
		s.logger.Warn("ANALYSIS", "Status cache write failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	evt := events.TriageCompleted(session.Id.String(), session.UserId.String(), res.TriageLevel.String(), res.Source)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ANALYSIS", "Failed to publish TRIAGE_COMPLETED", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	s.logger.Info("ANALYSIS", "Session analyzed", map[string]interface{}{
		"session_id":      session.Id.String(),
		"triage_level":    res.TriageLevel,
		"analysis_source": res.Source,
	})
	return nil
}
