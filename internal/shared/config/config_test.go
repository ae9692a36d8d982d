package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OBJECT_STORE", "REFERENCE_KEYS", "REFERENCE_BUCKET", "LLM_PROVIDER", "GENERATION_MODE", "GENERATION_MAX_TOKENS", "GENERATION_TEMPERATURE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.Equal(t, DefaultReferenceBucket, cfg.ReferenceBucket)
	assert.Equal(t, []string{"Federal Resume Samples.pdf", "sample-resume.pdf"}, cfg.ReferenceKeys)
	assert.Equal(t, "bedrock", cfg.LLMProvider)
	assert.Equal(t, "invoke", cfg.GenerationMode)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.True(t, cfg.UsesReferenceText())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REFERENCE_KEYS", " a.pdf, ,b.docx ")
	t.Setenv("GENERATION_MODE", "KB")
	t.Setenv("GENERATION_MAX_TOKENS", "not-a-number")
	t.Setenv("OBJECT_STORE", "LOCAL")
	t.Setenv("LLM_PROVIDER", "bedrock")

	cfg := Load()

	assert.Equal(t, []string{"a.pdf", "b.docx"}, cfg.ReferenceKeys)
	assert.Equal(t, "knowledge_base", cfg.GenerationMode)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.False(t, cfg.UsesReferenceText())
}

func TestNormalizeEnv(t *testing.T) {
	tests := map[string]string{
		"prod":       "production",
		" Staging ":  "staging",
		"local":      "local",
		"":           "dev",
		"whatever":   "dev",
		"production": "production",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeEnv(in), "normalizeEnv(%q)", in)
	}
}
