package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultReferenceBucket = "resume-builder-mockup-bucket"
	DefaultBedrockModelID  = "anthropic.claude-3-5-sonnet-20240620-v1:0"
	DefaultKnowledgeBaseID = "FROEVHOMYY"
	DefaultKBModelARN      = "amazon.titan-text-premier-v1:0"
	DefaultGeminiModel     = "gemini-2.5-flash"
)

// DefaultReferenceKeys are the reference resumes fed into the reference-text prompt.
var DefaultReferenceKeys = []string{"Federal Resume Samples.pdf", "sample-resume.pdf"}

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3EndpointURL   string
	S3AccessKey     string
	S3SecretKey     string
	ReferenceBucket string
	ReferenceKeys   []string

	LLMProvider           string
	GenerationMode        string
	BedrockModelID        string
	KnowledgeBaseID       string
	KnowledgeBaseModelARN string
	MaxTokens             int
	Temperature           float64
	GeminiAPIKey          string
	GeminiModel           string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; missing files are fine.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             normalizeEnv(getEnv("ENV", "dev")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "s3")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		S3EndpointURL:   getEnv("S3_ENDPOINT_URL", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		ReferenceBucket: getEnv("REFERENCE_BUCKET", DefaultReferenceBucket),
		ReferenceKeys:   referenceKeys(os.Getenv("REFERENCE_KEYS")),

		LLMProvider:           normalizeProvider(getEnv("LLM_PROVIDER", "bedrock")),
		GenerationMode:        normalizeMode(getEnv("GENERATION_MODE", "invoke")),
		BedrockModelID:        getEnv("BEDROCK_MODEL_ID", DefaultBedrockModelID),
		KnowledgeBaseID:       getEnv("KNOWLEDGE_BASE_ID", DefaultKnowledgeBaseID),
		KnowledgeBaseModelARN: getEnv("KNOWLEDGE_BASE_MODEL_ARN", DefaultKBModelARN),
		MaxTokens:             getEnvInt("GENERATION_MAX_TOKENS", 4096),
		Temperature:           getEnvFloat("GENERATION_TEMPERATURE", 0.7),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", DefaultGeminiModel),
	}
}

// UsesReferenceText reports whether prompts should carry the fetched reference corpus.
// The knowledge-base mode does its own retrieval server side.
func (c Config) UsesReferenceText() bool {
	return c.LLMProvider == "gemini" || c.GenerationMode == "invoke"
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Load never overrides variables that are already set.
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func referenceKeys(raw string) []string {
	keys := splitAndTrim(raw)
	if len(keys) == 0 {
		return append([]string(nil), DefaultReferenceKeys...)
	}
	return keys
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local":
		return "local"
	default:
		return "s3"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	default:
		return "bedrock"
	}
}

func normalizeMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "knowledge_base", "knowledge-base", "kb", "rag":
		return "knowledge_base"
	default:
		return "invoke"
	}
}
