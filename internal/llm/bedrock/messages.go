package bedrock

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pkg/errors"

	"resume-builder/internal/llm"
)

const (
	// AnthropicVersion is the protocol tag Bedrock expects on Anthropic bodies.
	AnthropicVersion = "bedrock-2023-05-31"
	// DefaultModelID is the model the reference-text prompt was written for.
	DefaultModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"

	contentTypeJSON = "application/json"
)

// InvokeModelAPI is the slice of the Bedrock Runtime client MessagesClient uses.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// MessagesClient sends the whole prompt as one user message to an Anthropic
// model hosted on Bedrock.
type MessagesClient struct {
	api         InvokeModelAPI
	modelID     string
	maxTokens   int
	temperature float64
}

// NewMessagesClient constructs a MessagesClient.
func NewMessagesClient(api InvokeModelAPI, modelID string, maxTokens int, temperature float64) (*MessagesClient, error) {
	if api == nil {
		return nil, errors.New("bedrock runtime client is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModelID
	}
	if maxTokens <= 0 {
		return nil, errors.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	return &MessagesClient{
		api:         api,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

type messagesRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	Messages         []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Role       string    `json:"role"`
	Content    []content `json:"content"`
	StopReason string    `json:"stop_reason"`
	Usage      *usage    `json:"usage,omitempty"`
}

type content struct {
	Type string  `json:"type"`
	Text *string `json:"text,omitempty"`
}

type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Generate invokes the model once and returns the text of the first content item.
func (c *MessagesClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		AnthropicVersion: AnthropicVersion,
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
		Messages:         []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
		Body:        body,
	})
	if err != nil {
		return "", describeAPIError(err, "invoke model "+c.modelID)
	}
	if out == nil || len(out.Body) == 0 {
		return "", errors.Wrap(llm.ErrEmptyResponse, "invoke model returned an empty body")
	}

	var parsed messagesResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", errors.Wrapf(err, "failed to parse model response: %s", truncate(string(out.Body), 512))
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == nil {
		return "", errors.Wrap(llm.ErrEmptyResponse, "unexpected response format from the model")
	}
	logUsage(c.modelID, parsed.StopReason, parsed.Usage)

	return *parsed.Content[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ llm.Generator = (*MessagesClient)(nil)
