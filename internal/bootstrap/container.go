package bootstrap

import (
	"context"
	"log"

	"triage-assist-be/internal/config"
	"triage-assist-be/internal/controller"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/repository/cache"
	"triage-assist-be/internal/repository/memory"
	"triage-assist-be/internal/repository/unitofwork"
	"triage-assist-be/internal/service"
	"triage-assist-be/pkg/events"
	"triage-assist-be/pkg/llm/factory"
	"triage-assist-be/pkg/ocr"
	"triage-assist-be/pkg/storage"
	"triage-assist-be/pkg/triage"

	pktNats "triage-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConsentController  controller.IConsentController
	SessionController  controller.ISessionController
	ReportController   controller.IReportController
	FunctionController controller.IFunctionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LlmLogFilePath)

	// 2. Job Queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	var eventPublisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
		}
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	statusCache := cache.NewSessionStatusCache(rdb, cfg.Triage.StatusCacheTTL)
	consentCache := memory.NewConsentCache(cfg.Triage.ConsentCacheTTL)

	blobs := newBlobStore(cfg.Storage)

	// 4. AI Providers
	analyzer := triage.NewAnalyzer(llmLogger, cfg.Ai.CallTimeout,
		namedProvider(cfg, cfg.Ai.PrimaryProvider, cfg.Ai.PrimaryModel, cfg.Ai.PrimaryBaseURL),
		namedProvider(cfg, cfg.Ai.SecondaryProvider, cfg.Ai.SecondaryModel, cfg.Ai.SecondaryBaseURL),
	)
	log.Printf("[INFO] Triage provider chain: %v (heuristic last)", analyzer.Providers())

	ocrProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Type:    factory.ProviderOpenAI,
		Model:   cfg.Ai.OcrModel,
		BaseURL: cfg.Ai.OcrBaseURL,
		APIKey:  cfg.Keys.AiGateway,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize OCR provider: %v", err)
	}
	if ocrProvider == nil {
		log.Printf("[WARN] AI_GATEWAY_API_KEY not set, OCR jobs will fail")
	}
	extractor := ocr.NewExtractor(ocrProvider, cfg.Ai.OcrModel)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.OcrTopic, pubSub)
	consentService := service.NewConsentService(uowFactory, consentCache, cfg.Keys.IpHashSalt, sysLogger)
	sessionService := service.NewSessionService(uowFactory, consentService, statusCache, cfg.Triage.RequireConsent, sysLogger)
	analysisService := service.NewAnalysisService(uowFactory, analyzer, statusCache, eventPublisher, sysLogger)
	reportService := service.NewReportService(uowFactory, blobs, publisherService, sysLogger)
	ocrService := service.NewOcrService(uowFactory, blobs, extractor, eventPublisher, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.OcrTopic, ocrService, sysLogger)

	// 6. Controllers
	return &Container{
		ConsentController:  controller.NewConsentController(consentService),
		SessionController:  controller.NewSessionController(sessionService, analysisService, reportService),
		ReportController:   controller.NewReportController(reportService),
		FunctionController: controller.NewFunctionController(analysisService, ocrService, sysLogger),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}

func namedProvider(cfg *config.Config, kind, model, baseURL string) triage.NamedProvider {
	pc := factory.ProviderConfig{Type: kind, Model: model, BaseURL: baseURL}
	switch kind {
	case factory.ProviderGemini:
		pc.APIKey = cfg.Keys.GoogleGemini
	case factory.ProviderOpenAI:
		pc.APIKey = cfg.Keys.OpenAI
	case factory.ProviderHuggingFace:
		pc.APIKey = cfg.Keys.HuggingFace
	case factory.ProviderOllama:
		if pc.BaseURL == "" {
			pc.BaseURL = cfg.Ai.OllamaBaseURL
		}
	}

	provider, err := factory.NewLLMProvider(pc)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider %q: %v", kind, err)
	}
	if provider == nil && kind != "" && kind != factory.ProviderNone {
		log.Printf("[WARN] LLM provider %s has no API key, skipping", kind)
	}
	return triage.NamedProvider{Name: kind, Provider: provider}
}

func newBlobStore(cfg config.StorageConfig) storage.BlobStore {
	if cfg.Driver == "s3" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize S3 storage: %v", err)
		}
		log.Printf("[INFO] Using S3 storage (bucket %s)", cfg.Bucket)
		return s3Store
	}

	local, err := storage.NewLocalStore(cfg.LocalRoot)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize local storage: %v", err)
	}
	log.Printf("[INFO] Using local storage at %s", cfg.LocalRoot)
	return local
}
