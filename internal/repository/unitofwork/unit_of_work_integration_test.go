package unitofwork

import (
	"context"
	"os"
	"testing"
	"time"

	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/model"
	"triage-assist-be/internal/repository/specification"
	"triage-assist-be/pkg/database"
	"triage-assist-be/pkg/triage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real postgres when DB_CONNECTION_STRING is set.
func TestUnitOfWork_Postgres(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDB(database.GormConfig{URL: dsn})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ConsentRecord{}, &model.SymptomSession{}, &model.ReportFile{}, &model.LlmAuditLog{}))

	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)
	user := uuid.New()

	session := &entity.SymptomSession{
		Id:        uuid.New(),
		UserId:    user,
		Input:     triage.SymptomInput{SymptomsText: "integration headache", Severity: triage.SeverityMild, Age: 33},
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.SymptomSessionRepository().Create(ctx, session))
	t.Cleanup(func() { db.Where("user_id = ?", user).Delete(&model.SymptomSession{}) })

	t.Run("session result round trip", func(t *testing.T) {
		session.ApplyResult(triage.Heuristic(session.Input), time.Now())
		require.NoError(t, uow.SymptomSessionRepository().SaveResult(ctx, session))

		found, err := uow.SymptomSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id}, specification.UserOwnedBy{UserID: user})
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.TriageLevel)
		assert.Equal(t, triage.LevelSelfCare, *found.TriageLevel)
		assert.NotNil(t, found.Recommendations.WhatToDo)
	})

	t.Run("ocr transition happens once", func(t *testing.T) {
		file := &entity.ReportFile{
			Id: uuid.New(), SessionId: session.Id, UserId: user,
			FileName: "a.png", FilePath: user.String() + "/1-a.png", FileType: "image/png", FileSize: 1,
			OcrStatus: entity.OcrStatusPending, CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ReportFileRepository().Create(ctx, file))

		changed, err := uow.ReportFileRepository().MarkCompleted(ctx, file.Id, "text", map[string]any{"k": "v"})
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = uow.ReportFileRepository().MarkFailed(ctx, file.Id)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("audit logs by session", func(t *testing.T) {
		repo := uow.LlmAuditLogRepository()
		require.NoError(t, repo.Create(ctx, &entity.LlmAuditLog{
			Id: uuid.New(), SessionId: &session.Id, UserId: user,
			PromptData:   map[string]any{"provider": "gemini"},
			ResponseData: map[string]any{"duration_ms": 12},
			ModelUsed:    "gemini-2.5-flash", TokensUsed: 42, CreatedAt: time.Now(),
		}))
		t.Cleanup(func() { db.Where("user_id = ?", user).Delete(&model.LlmAuditLog{}) })

		logs, err := repo.FindAll(ctx, specification.BySessionID{SessionID: session.Id})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, 42, logs[0].TokensUsed)
		assert.Equal(t, "gemini", logs[0].PromptData["provider"])
	})

	t.Run("latest consent wins", func(t *testing.T) {
		repo := uow.ConsentRecordRepository()
		require.NoError(t, repo.Create(ctx, &entity.ConsentRecord{Id: uuid.New(), UserId: user, ConsentGiven: true, ConsentText: "v1", CreatedAt: time.Now().Add(-time.Minute)}))
		require.NoError(t, repo.Create(ctx, &entity.ConsentRecord{Id: uuid.New(), UserId: user, ConsentGiven: false, ConsentText: "v2", CreatedAt: time.Now()}))
		t.Cleanup(func() { db.Where("user_id = ?", user).Delete(&model.ConsentRecord{}) })

		latest, err := repo.FindLatest(ctx, user)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "v2", latest.ConsentText)
	})
}
