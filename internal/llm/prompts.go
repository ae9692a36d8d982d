package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/experience_v1.txt
	experiencePromptV1 string
	//go:embed prompts/experience_reference_v1.txt
	experienceReferencePromptV1 string
	//go:embed prompts/summary_v1.txt
	summaryPromptV1 string
)

const (
	ExperienceMarker = "### Experience ###"
	SummaryMarker    = "### Professional Summary ###"
)

// JoinMode controls how the lines following a marker are stitched together.
type JoinMode int

const (
	// JoinLines keeps one output line per response line.
	JoinLines JoinMode = iota
	// JoinSpaces collapses the section into a single space-separated line.
	JoinSpaces
)

// Variant identifies one prompt template together with the marker its
// response is expected to carry.
type Variant string

const (
	VariantExperience          Variant = "experience"
	VariantExperienceReference Variant = "experience_reference"
	VariantSummary             Variant = "summary"
)

// Marker returns the literal line that starts the wanted section.
func (v Variant) Marker() string {
	if v == VariantSummary {
		return SummaryMarker
	}
	return ExperienceMarker
}

// Join returns how the extracted section is joined.
func (v Variant) Join() JoinMode {
	if v == VariantSummary {
		return JoinSpaces
	}
	return JoinLines
}

// UsesReferenceText reports whether the template embeds the reference corpus.
func (v Variant) UsesReferenceText() bool {
	return strings.Contains(v.template(), "{{REFERENCE_TEXT}}")
}

// Valid reports whether v names a known template.
func (v Variant) Valid() bool {
	switch v {
	case VariantExperience, VariantExperienceReference, VariantSummary:
		return true
	default:
		return false
	}
}

func (v Variant) template() string {
	switch v {
	case VariantExperienceReference:
		return experienceReferencePromptV1
	case VariantSummary:
		return summaryPromptV1
	default:
		return experiencePromptV1
	}
}

// BuildPrompt fills the variant's template with the user's experience and the
// reference corpus. Both values are inserted verbatim.
func BuildPrompt(v Variant, experience, referenceText string) string {
	replacer := strings.NewReplacer(
		"{{EXPERIENCE}}", experience,
		"{{REFERENCE_TEXT}}", referenceText,
	)
	return replacer.Replace(v.template())
}
