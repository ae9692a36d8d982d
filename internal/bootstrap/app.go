package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/llm"
	"resume-builder/internal/llm/bedrock"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/references"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Store         object.ObjectStore
	References    *references.Fetcher
	Generator     llm.Generator
	ResumeService *resumes.Service
	ResumeHandler *resumes.Handler
}

// Build wires the store, generator, pipeline and router from cfg.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := BuildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return Assemble(cfg, store, gen), nil
}

// Assemble wires the pipeline and router around an already built store and generator.
func Assemble(cfg config.Config, store object.ObjectStore, gen llm.Generator) *App {
	fetcher := &references.Fetcher{Store: store, Keys: cfg.ReferenceKeys}
	svc := &resumes.Service{
		References:    fetcher,
		Generator:     gen,
		Variant:       ExperienceVariant(cfg),
		UseReferences: cfg.UsesReferenceText(),
	}
	handler := resumes.NewHandler(svc)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"object_store":    cfg.ObjectStoreType,
		"llm_provider":    cfg.LLMProvider,
		"generation_mode": cfg.GenerationMode,
		"variant":         string(svc.Variant),
		"reference_keys":  len(cfg.ReferenceKeys),
	})

	return &App{
		Config:        cfg,
		Router:        server.NewRouter(cfg, handler),
		Store:         store,
		References:    fetcher,
		Generator:     gen,
		ResumeService: svc,
		ResumeHandler: handler,
	}
}

// ExperienceVariant picks the experience template for the configured provider and mode.
func ExperienceVariant(cfg config.Config) llm.Variant {
	if cfg.UsesReferenceText() {
		return llm.VariantExperienceReference
	}
	return llm.VariantExperience
}

// BuildStore returns the object store holding the reference documents.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:      cfg.AWSRegion,
			Bucket:      cfg.ReferenceBucket,
			EndpointURL: cfg.S3EndpointURL,
			AccessKey:   cfg.S3AccessKey,
			SecretKey:   cfg.S3SecretKey,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildGenerator returns the generation client for the configured provider.
// Missing credentials fall back to a placeholder in dev so the form still renders.
func BuildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	gen, err := buildGenerator(ctx, cfg)
	if err == nil {
		return gen, nil
	}
	if !isDevLike(cfg.Env) {
		return nil, err
	}
	telemetry.Warn("bootstrap.generator_unavailable", map[string]any{
		"llm_provider": cfg.LLMProvider,
		"error":        err,
	})
	return llm.PlaceholderGenerator{}, nil
}

func buildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens, cfg.Temperature)
	case "bedrock":
		clients, err := bedrock.NewClients(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		if cfg.GenerationMode == "knowledge_base" {
			return bedrock.NewKnowledgeBaseClient(clients.AgentRuntime, cfg.KnowledgeBaseID, cfg.KnowledgeBaseModelARN)
		}
		return bedrock.NewMessagesClient(clients.Runtime, cfg.BedrockModelID, cfg.MaxTokens, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
