package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/repository/contract"
	"triage-assist-be/internal/repository/specification"
	"triage-assist-be/internal/repository/unitofwork"
	"triage-assist-be/pkg/events"

	"github.com/google/uuid"
)

// fakeStore backs every fake repository. Specifications are interpreted by type.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.SymptomSession
	reports  map[uuid.UUID]*entity.ReportFile
	consents []*entity.ConsentRecord
	audits   []*entity.LlmAuditLog

	failAudit bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[uuid.UUID]*entity.SymptomSession{},
		reports:  map[uuid.UUID]*entity.ReportFile{},
	}
}

type filter struct {
	id        *uuid.UUID
	userId    *uuid.UUID
	sessionId *uuid.UUID
	ocrStatus string
	limit     int
}

func parseSpecs(specs []specification.Specification) filter {
	var f filter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			f.id = &v.ID
		case specification.UserOwnedBy:
			f.userId = &v.UserID
		case specification.BySessionID:
			f.sessionId = &v.SessionID
		case specification.ByOcrStatus:
			f.ocrStatus = v.Status
		case specification.Pagination:
			f.limit = v.Limit
		}
	}
	return f
}

func (s *fakeStore) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: s}
}

type fakeUow struct{ store *fakeStore }

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) SymptomSessionRepository() contract.SymptomSessionRepository {
	return &fakeSessionRepo{u.store}
}
func (u *fakeUow) ReportFileRepository() contract.ReportFileRepository {
	return &fakeReportRepo{u.store}
}
func (u *fakeUow) ConsentRecordRepository() contract.ConsentRecordRepository {
	return &fakeConsentRepo{u.store}
}
func (u *fakeUow) LlmAuditLogRepository() contract.LlmAuditLogRepository {
	return &fakeAuditRepo{u.store}
}

type fakeSessionRepo struct{ s *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.SymptomSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *session
	r.s.sessions[session.Id] = &cp
	return nil
}

func (r *fakeSessionRepo) SaveResult(_ context.Context, session *entity.SymptomSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.sessions[session.Id]
	if !ok {
		return errors.New("record not found")
	}
	stored.TriageLevel = session.TriageLevel
	stored.TriageReason = session.TriageReason
	stored.ConfidenceScore = session.ConfidenceScore
	stored.Recommendations = session.Recommendations
	stored.AnalysisSource = session.AnalysisSource
	stored.UpdatedAt = session.UpdatedAt
	return nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SymptomSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f := parseSpecs(specs)
	var out []*entity.SymptomSession
	for _, ss := range r.s.sessions {
		if f.id != nil && ss.Id != *f.id {
			continue
		}
		if f.userId != nil && ss.UserId != *f.userId {
			continue
		}
		cp := *ss
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.limit > 0 && len(out) > f.limit {
		out = out[:f.limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SymptomSession, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

type fakeReportRepo struct{ s *fakeStore }

func (r *fakeReportRepo) Create(_ context.Context, file *entity.ReportFile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *file
	r.s.reports[file.Id] = &cp
	return nil
}

func (r *fakeReportRepo) MarkCompleted(_ context.Context, id uuid.UUID, text string, parsed map[string]any) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.reports[id]
	if !ok {
		return false, nil
	}
	if err := f.Complete(text, parsed); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeReportRepo) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.reports[id]
	if !ok {
		return false, nil
	}
	return f.Transition(entity.OcrStatusFailed) == nil, nil
}

func (r *fakeReportRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ReportFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f := parseSpecs(specs)
	var out []*entity.ReportFile
	for _, rf := range r.s.reports {
		if f.id != nil && rf.Id != *f.id {
			continue
		}
		if f.userId != nil && rf.UserId != *f.userId {
			continue
		}
		if f.sessionId != nil && rf.SessionId != *f.sessionId {
			continue
		}
		if f.ocrStatus != "" && string(rf.OcrStatus) != f.ocrStatus {
			continue
		}
		cp := *rf
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportFile, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

type fakeConsentRepo struct{ s *fakeStore }

func (r *fakeConsentRepo) Create(_ context.Context, record *entity.ConsentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *record
	r.s.consents = append(r.s.consents, &cp)
	return nil
}

func (r *fakeConsentRepo) FindLatest(_ context.Context, userId uuid.UUID) (*entity.ConsentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entity.ConsentRecord
	for _, c := range r.s.consents {
		if c.UserId == userId && (latest == nil || !c.CreatedAt.Before(latest.CreatedAt)) {
			latest = c
		}
	}
	return latest, nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) Create(_ context.Context, log *entity.LlmAuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAudit {
		return errors.New("audit table unavailable")
	}
	cp := *log
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

func (r *fakeAuditRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.LlmAuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.LlmAuditLog(nil), r.s.audits...), nil
}

// recordingPublisher captures domain events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// queuePublisher captures OCR job payloads.
type queuePublisher struct {
	payloads [][]byte
	err      error
}

func (q *queuePublisher) Publish(_ context.Context, payload []byte) error {
	q.payloads = append(q.payloads, payload)
	return q.err
}
