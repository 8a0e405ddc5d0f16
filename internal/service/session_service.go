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

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	History(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.SessionHistoryItem, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.SessionResponse, error)
	Status(ctx context.Context, userId, id uuid.UUID) (*dto.SessionStatusResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	consentService IConsentService
	statusCache    *cache.SessionStatusCache
	requireConsent bool
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	consentService IConsentService,
	statusCache *cache.SessionStatusCache,
	requireConsent bool,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		consentService: consentService,
		statusCache:    statusCache,
		requireConsent: requireConsent,
		logger:         log,
	}
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if s.requireConsent {
		ok, err := s.consentService.HasConsent(ctx, userId)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConsentRequired
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := entity.SymptomSession{
		Id:        uuid.New(),
		UserId:    userId,
		Input:     req.Input(),
		CreatedAt: time.Now(),
	}
	if err := uow.SymptomSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.logger.Info("SESSION", "Session created", map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    userId.String(),
		"severity":   session.Input.Severity,
	})

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) History(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.SessionHistoryItem, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SymptomSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionHistoryItem, 0, len(sessions))
	for _, ss := range sessions {
		res = append(res, &dto.SessionHistoryItem{
			Id:           ss.Id,
			SymptomsText: ss.Input.SymptomsText,
			Severity:     ss.Input.Severity,
			Status:       statusOf(ss),
			TriageLevel:  ss.TriageLevel,
			CreatedAt:    ss.CreatedAt,
		})
	}
	return res, nil
}

func (s *sessionService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	files, err := uow.ReportFileRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	reports := make([]*dto.ReportResponse, 0, len(files))
	for _, f := range files {
		reports = append(reports, toReportResponse(f))
	}

	return &dto.SessionResponse{
		Id:              session.Id,
		Input:           session.Input,
		Status:          statusOf(session),
		TriageLevel:     session.TriageLevel,
		TriageReason:    session.TriageReason,
		ConfidenceScore: session.ConfidenceScore,
		Recommendations: session.Recommendations,
		AnalysisSource:  session.AnalysisSource,
		Reports:         reports,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}, nil
}

// Status is the polling endpoint. Completed sessions are served from redis.
func (s *sessionService) Status(ctx context.Context, userId, id uuid.UUID) (*dto.SessionStatusResponse, error) {
	cached, err := s.statusCache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("SESSION", "Status cache read failed", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
	}
	if cached != nil && cached.UserId == userId {
		return &dto.SessionStatusResponse{Id: cached.SessionId, Status: cached.Status, TriageLevel: cached.TriageLevel}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	st := statusEntry(session)
	if err := s.statusCache.Set(ctx, st); err != nil {
		s.logger.Warn("SESSION", "Status cache write failed", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
	}
	return &dto.SessionStatusResponse{Id: st.SessionId, Status: st.Status, TriageLevel: st.TriageLevel}, nil
}

func findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.SymptomSession, error) {
	session, err := uow.SymptomSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func statusOf(s *entity.SymptomSession) string {
	if s.Pending() {
		return StatusPending
	}
	return StatusCompleted
}

func statusEntry(s *entity.SymptomSession) *cache.SessionStatus {
	st := &cache.SessionStatus{
		SessionId: s.Id,
		UserId:    s.UserId,
		Status:    statusOf(s),
	}
	if s.TriageLevel != nil {
		level := s.TriageLevel.String()
		st.TriageLevel = &level
	}
	return st
}
