package gemini

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"resume-builder/internal/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ContentGenerator is the slice of genai.Models the client uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Generator on top of the Gemini API.
type Client struct {
	models      ContentGenerator
	model       string
	maxTokens   int32
	temperature float32
}

// New builds a Gemini-backed generator from an API key.
func New(ctx context.Context, apiKey, model string, maxTokens int, temperature float64) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	return NewWithModels(client.Models, model, maxTokens, temperature), nil
}

// NewWithModels wraps an existing content generator.
func NewWithModels(models ContentGenerator, model string, maxTokens int, temperature float64) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Client{
		models:      models,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: float32(temperature),
	}
}

// Generate sends the prompt as a single user turn and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", errors.Wrapf(err, "gemini generate content model=%s", c.model)
	}
	if resp == nil {
		return "", errors.Wrap(llm.ErrEmptyResponse, "gemini returned no response")
	}
	text := resp.Text()
	if text == "" {
		return "", errors.Wrap(llm.ErrEmptyResponse, "gemini response has no text parts")
	}
	return text, nil
}

var _ llm.Generator = (*Client)(nil)
