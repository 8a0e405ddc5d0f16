package service

import (
	"context"
	"encoding/hex"
	"time"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/entity"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/repository/memory"
	"triage-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

type IConsentService interface {
	Record(ctx context.Context, userId uuid.UUID, req *dto.RecordConsentRequest, userAgent, clientIP string) (*dto.ConsentResponse, error)
	Latest(ctx context.Context, userId uuid.UUID) (*dto.ConsentResponse, error)
	HasConsent(ctx context.Context, userId uuid.UUID) (bool, error)
}

type consentService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ConsentCache
	ipHashKey  []byte
	logger     logger.ILogger
}

func NewConsentService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.ConsentCache,
	ipHashKey string,
	log logger.ILogger,
) IConsentService {
	key := []byte(ipHashKey)
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	return &consentService{
		uowFactory: uowFactory,
		cache:      cache,
		ipHashKey:  key,
		logger:     log,
	}
}

// HashIP returns a keyed BLAKE2b-256 digest so raw addresses are never stored.
func HashIP(key []byte, ip string) string {
	if ip == "" {
		return ""
	}
	h, err := blake2b.New256(key)
	if err != nil {
		return ""
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *consentService) Record(ctx context.Context, userId uuid.UUID, req *dto.RecordConsentRequest, userAgent, clientIP string) (*dto.ConsentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record := entity.ConsentRecord{
		Id:           uuid.New(),
		UserId:       userId,
		ConsentGiven: *req.ConsentGiven,
		ConsentText:  req.ConsentText,
		UserAgent:    userAgent,
		IpHash:       HashIP(s.ipHashKey, clientIP),
		CreatedAt:    time.Now(),
	}
	if err := uow.ConsentRecordRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	s.cache.Save(&record)
	s.logger.Info("CONSENT", "Consent recorded", map[string]interface{}{
		"user_id":       userId.String(),
		"consent_given": record.ConsentGiven,
	})

	return toConsentResponse(&record), nil
}

func (s *consentService) latest(ctx context.Context, userId uuid.UUID) (*entity.ConsentRecord, error) {
	if rec, ok := s.cache.Get(userId); ok {
		return rec, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.ConsentRecordRepository().FindLatest(ctx, userId)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		s.cache.Save(rec)
	}
	return rec, nil
}

func (s *consentService) Latest(ctx context.Context, userId uuid.UUID) (*dto.ConsentResponse, error) {
	rec, err := s.latest(ctx, userId)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrConsentNotFound
	}
	return toConsentResponse(rec), nil
}

func (s *consentService) HasConsent(ctx context.Context, userId uuid.UUID) (bool, error) {
	rec, err := s.latest(ctx, userId)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.ConsentGiven, nil
}

func toConsentResponse(rec *entity.ConsentRecord) *dto.ConsentResponse {
	return &dto.ConsentResponse{
		Id:           rec.Id,
		ConsentGiven: rec.ConsentGiven,
		ConsentText:  rec.ConsentText,
		CreatedAt:    rec.CreatedAt,
	}
}
