package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Storage  StorageConfig
	Triage   TriageConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LlmLogFilePath     string // provider call trail, kept out of the main log
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	Verbose    bool
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	HuggingFace  string
	AiGateway    string // OpenAI-compatible endpoint used for OCR
	IpHashSalt   string
	OcrTopic     string
}

type AIConfig struct {
	PrimaryProvider   string // "gemini", "openai", "huggingface", "ollama" or "none"
	PrimaryModel      string
	PrimaryBaseURL    string
	SecondaryProvider string
	SecondaryModel    string
	SecondaryBaseURL  string
	OllamaBaseURL     string
	CallTimeout       time.Duration
	OcrBaseURL        string
	OcrModel          string
}

type StorageConfig struct {
	Driver    string // "s3" or "local"
	Bucket    string
	Region    string
	Endpoint  string
	LocalRoot string
}

type TriageConfig struct {
	RequireConsent  bool
	StatusCacheTTL  time.Duration
	ConsentCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LlmLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "triage"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			Verbose:    getEnvAsBool("DB_VERBOSE", false),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			AiGateway:    getEnv("AI_GATEWAY_API_KEY", ""),
			IpHashSalt:   getEnv("IP_HASH_SALT", "triage-assist"),
			OcrTopic:     getEnv("PROCESS_OCR_TOPIC_NAME", "PROCESS_OCR"),
		},
		Ai: AIConfig{
			PrimaryProvider:   getEnv("LLM_PRIMARY_PROVIDER", "gemini"),
			PrimaryModel:      getEnv("LLM_PRIMARY_MODEL", "gemini-2.5-flash"),
			PrimaryBaseURL:    getEnv("LLM_PRIMARY_BASE_URL", ""),
			SecondaryProvider: getEnv("LLM_SECONDARY_PROVIDER", "openai"),
			SecondaryModel:    getEnv("LLM_SECONDARY_MODEL", "gpt-4o-mini"),
			SecondaryBaseURL:  getEnv("LLM_SECONDARY_BASE_URL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			CallTimeout:       time.Duration(getEnvAsInt("LLM_CALL_TIMEOUT_SECONDS", 30)) * time.Second,
			OcrBaseURL:        getEnv("OCR_BASE_URL", "https://ai.gateway.lovable.dev/v1"),
			OcrModel:          getEnv("OCR_MODEL", "google/gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    getEnv("STORAGE_BUCKET", "medical-reports"),
			Region:    getEnv("AWS_REGION", "us-east-1"),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			LocalRoot: getEnv("STORAGE_LOCAL_ROOT", "./uploads"),
		},
		Triage: TriageConfig{
			RequireConsent:  getEnvAsBool("REQUIRE_CONSENT", true),
			StatusCacheTTL:  time.Duration(getEnvAsInt("STATUS_CACHE_TTL_SECONDS", 3600)) * time.Second,
			ConsentCacheTTL: time.Duration(getEnvAsInt("CONSENT_CACHE_TTL_SECONDS", 900)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
