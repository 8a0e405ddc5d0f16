package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/pkg/events"
	"triage-assist-be/pkg/triage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer reports one failed and one successful attempt, then returns result.
type stubAnalyzer struct {
	result   triage.Result
	requests []triage.Request
}

func (a *stubAnalyzer) Analyze(ctx context.Context, req triage.Request) triage.Result {
	a.requests = append(a.requests, req)
	if req.OnAttempt != nil {
		req.OnAttempt(ctx, triage.Attempt{Provider: "gemini", Err: errors.New("quota exceeded"), Duration: time.Millisecond})
		req.OnAttempt(ctx, triage.Attempt{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			RawResponse: `{"triage_level":"see-doctor"}`,
			Parsed:      map[string]any{"triage_level": "see-doctor"},
			TokensUsed:  321,
		})
	}
	return a.result
}

func seeDoctorResult() triage.Result {
	res := triage.Normalize(map[string]any{"triage_level": "see-doctor", "triage_reason": "needs review"})
	res.Source = "openai"
	return res
}

func TestAnalysisService_AnalyzeSession(t *testing.T) {
	store := newFakeStore()
	statusCache, mr := newStatusCache(t)
	pub := &recordingPublisher{}
	analyzer := &stubAnalyzer{result: seeDoctorResult()}
	svc := NewAnalysisService(store, analyzer, statusCache, pub, logger.NewNopLogger())

	user := uuid.New()
	sid := uuid.New()
	store.sessions[sid] = &entity.SymptomSession{Id: sid, UserId: user, CreatedAt: time.Now(),
		Input: triage.SymptomInput{SymptomsText: "persistent cough for a week", Severity: triage.SeverityModerate, Age: 40}}

	text := "Hemoglobin 11.2 g/dL"
	done := uuid.New()
	store.reports[done] = &entity.ReportFile{Id: done, SessionId: sid, UserId: user, FileName: "cbc.png",
		OcrStatus: entity.OcrStatusCompleted, OcrText: &text, ParsedData: map[string]any{"lab_values": []any{}}}
	pending := uuid.New()
	store.reports[pending] = &entity.ReportFile{Id: pending, SessionId: sid, UserId: user, FileName: "xray.pdf", OcrStatus: entity.OcrStatusPending}

	res, err := svc.AnalyzeSession(context.Background(), user, sid)
	require.NoError(t, err)
	assert.Equal(t, triage.LevelSeeDoctor, res.Result.TriageLevel)

	// Only completed reports are attached.
	require.Len(t, analyzer.requests, 1)
	reports, ok := analyzer.requests[0].ReportData["reports"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, reports, 1)
	assert.Equal(t, text, reports[0]["extracted_text"])

	stored := store.sessions[sid]
	require.False(t, stored.Pending())
	assert.Equal(t, "openai", *stored.AnalysisSource)

	require.Len(t, store.audits, 2)
	assert.Equal(t, "quota exceeded", store.audits[0].ResponseData["error"])
	assert.Equal(t, "gpt-4o-mini", store.audits[1].ModelUsed)
	assert.Equal(t, 321, store.audits[1].TokensUsed)
	assert.Equal(t, sid, *store.audits[1].SessionId)

	assert.Equal(t, []string{events.TypeTriageCompleted}, pub.types())
	assert.True(t, mr.Exists("triage:session:status:"+sid.String()))
}

func TestAnalysisService_AuditFailureDoesNotFailAnalysis(t *testing.T) {
	store := newFakeStore()
	store.failAudit = true
	svc := NewAnalysisService(store, &stubAnalyzer{result: seeDoctorResult()}, nil, nil, logger.NewNopLogger())

	user := uuid.New()
	sid := uuid.New()
	store.sessions[sid] = &entity.SymptomSession{Id: sid, UserId: user, CreatedAt: time.Now()}

	_, err := svc.AnalyzeSession(context.Background(), user, sid)
	require.NoError(t, err)
	assert.False(t, store.sessions[sid].Pending())
}

func TestAnalysisService_Analyze(t *testing.T) {
	user := uuid.New()
	input := triage.SymptomInput{SymptomsText: "sore throat and mild fever", Severity: triage.SeverityMild, Age: 25}

	tests := []struct {
		name      string
		sessionId func(store *fakeStore) string
		wantErr   error
		persisted bool
	}{
		{
			name:      "without session",
			sessionId: func(*fakeStore) string { return "" },
		},
		{
			name: "owned session is updated",
			sessionId: func(store *fakeStore) string {
				id := uuid.New()
				store.sessions[id] = &entity.SymptomSession{Id: id, UserId: user, CreatedAt: time.Now()}
				return id.String()
			},
			persisted: true,
		},
		{
			name: "foreign session",
			sessionId: func(store *fakeStore) string {
				id := uuid.New()
				store.sessions[id] = &entity.SymptomSession{Id: id, UserId: uuid.New(), CreatedAt: time.Now()}
				return id.String()
			},
			wantErr: ErrSessionNotFound,
		},
		{
			name:      "malformed session id",
			sessionId: func(*fakeStore) string { return "not-a-uuid" },
			wantErr:   ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			analyzer := &stubAnalyzer{result: seeDoctorResult()}
			svc := NewAnalysisService(store, analyzer, nil, nil, logger.NewNopLogger())

			sid := tt.sessionId(store)
			res, err := svc.Analyze(context.Background(), user, &dto.AnalyzeSymptomsRequest{SessionId: sid, Symptoms: input})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, analyzer.requests)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, triage.LevelSeeDoctor, res.TriageLevel)
			assert.Equal(t, input, analyzer.requests[0].Input)
			assert.Len(t, store.audits, 2)

			if tt.persisted {
				id := uuid.MustParse(sid)
				assert.False(t, store.sessions[id].Pending())
				assert.Equal(t, id, *store.audits[0].SessionId)
			} else {
				assert.Nil(t, store.audits[0].SessionId)
			}
		})
	}
}
