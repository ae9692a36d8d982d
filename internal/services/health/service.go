package health

import "resume-builder/internal/shared/config"

// Service encapsulates health-related checks.
type Service struct {
	provider    string
	mode        string
	objectStore string
}

// NewService constructs a health service describing the configured backends.
func NewService(cfg config.Config) *Service {
	return &Service{
		provider:    cfg.LLMProvider,
		mode:        cfg.GenerationMode,
		objectStore: cfg.ObjectStoreType,
	}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":             true,
		"llmProvider":    s.provider,
		"generationMode": s.mode,
		"objectStore":    s.objectStore,
	}
}
