package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/references"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/render"
)

// ReferenceSource supplies the reference corpus embedded in prompts.
type ReferenceSource interface {
	Fetch(ctx context.Context) references.Corpus
}

// Service runs one submission through generation and rendering.
type Service struct {
	References ReferenceSource
	Generator  llm.Generator
	// Variant is the template used for the experience section.
	Variant llm.Variant
	// UseReferences enables fetching the reference corpus for templates that embed it.
	UseReferences bool
}

// Result is a finished build.
type Result struct {
	Experience string   `json:"experience"`
	Summary    string   `json:"summary,omitempty"`
	Preview    string   `json:"preview"`
	Document   []byte   `json:"-"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Build validates the input, generates the rewritten sections and renders the
// document. Errors are *StageError values naming the stage that failed.
func (s *Service) Build(ctx context.Context, in FormInput) (Result, error) {
	start := time.Now()
	metrics.IncBuildStarted()

	res, err := s.build(ctx, in)
	metrics.ObserveBuildDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		stage := StageOf(err)
		metrics.IncBuildFailed(string(stage))
		telemetry.Warn("resume.build_failed", map[string]any{
			"stage": string(stage),
			"error": err,
		})
		return Result{}, err
	}

	metrics.IncBuildCompleted()
	telemetry.Info("resume.build_completed", map[string]any{
		"variant":        string(s.variant()),
		"summary":        in.GenerateSummary,
		"document_bytes": len(res.Document),
		"warnings":       len(res.Warnings),
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	return res, nil
}

func (s *Service) build(ctx context.Context, in FormInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, stageErr(StageValidate, err)
	}
	if s.Generator == nil {
		return Result{}, stageErr(StageGenerate, fmt.Errorf("%w: %w", ErrGeneration, llm.ErrNotConfigured))
	}

	var res Result
	variant := s.variant()
	variants := []llm.Variant{variant}
	if in.GenerateSummary {
		variants = append(variants, llm.VariantSummary)
	}
	referenceText, warnings := s.referenceText(ctx, variants...)
	res.Warnings = warnings

	experience, err := s.section(ctx, variant, in.Experience, referenceText)
	if err != nil {
		return Result{}, err
	}
	res.Experience = experience

	if in.GenerateSummary {
		summary, err := s.section(ctx, llm.VariantSummary, in.Experience, referenceText)
		if err != nil {
			return Result{}, err
		}
		res.Summary = summary
	}

	resume := in.resume(res.Experience, res.Summary)
	doc, err := render.RenderResume(resume)
	if err != nil {
		return Result{}, stageErr(StageRender, err)
	}
	res.Document = doc
	res.Preview = render.RenderText(resume)
	return res, nil
}

// section runs one prompt/generate/extract round for the given variant.
func (s *Service) section(ctx context.Context, variant llm.Variant, experience, referenceText string) (string, error) {
	prompt := llm.BuildPrompt(variant, experience, referenceText)

	text, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", stageErr(StageGenerate, fmt.Errorf("%w: %w", ErrGeneration, err))
	}
	if strings.TrimSpace(text) == "" {
		return "", stageErr(StageGenerate, fmt.Errorf("%w: %w", ErrGeneration, llm.ErrEmptyResponse))
	}

	section := llm.ExtractSection(text, variant.Marker(), variant.Join())
	if section == "" {
		return "", stageErr(StageExtract, fmt.Errorf("%w: %q not found in response", ErrMarkerNotFound, variant.Marker()))
	}
	return section, nil
}

// Enhance rewrites a single section without rendering a document. It returns
// the extracted section and any reference warnings.
func (s *Service) Enhance(ctx context.Context, variant llm.Variant, experience string) (string, []string, error) {
	if strings.TrimSpace(experience) == "" {
		return "", nil, stageErr(StageValidate, fmt.Errorf("%w: missing Work Experience", ErrMissingFields))
	}
	if s.Generator == nil {
		return "", nil, stageErr(StageGenerate, fmt.Errorf("%w: %w", ErrGeneration, llm.ErrNotConfigured))
	}
	if !variant.Valid() {
		variant = s.variant()
	}
	referenceText, warnings := s.referenceText(ctx, variant)
	section, err := s.section(ctx, variant, experience, referenceText)
	if err != nil {
		return "", warnings, err
	}
	return section, warnings, nil
}

// referenceText fetches the corpus once if any of the variants embeds it.
func (s *Service) referenceText(ctx context.Context, variants ...llm.Variant) (string, []string) {
	if !s.UseReferences || s.References == nil {
		return "", nil
	}
	needed := false
	for _, v := range variants {
		if v.UsesReferenceText() {
			needed = true
			break
		}
	}
	if !needed {
		return "", nil
	}

	corpus := s.References.Fetch(ctx)
	metrics.AddReferenceFetchFailures(len(corpus.Failures))
	var warnings []string
	for _, failure := range corpus.Failures {
		warnings = append(warnings, failure.Error())
	}
	return corpus.Text, warnings
}

func (s *Service) variant() llm.Variant {
	if s.Variant.Valid() {
		return s.Variant
	}
	return llm.VariantExperience
}
