package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
)

type mockRuntime struct {
	mock.Mock
}

func (m *mockRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bedrockruntime.InvokeModelOutput), args.Error(1)
}

type mockAgentRuntime struct {
	mock.Mock
}

func (m *mockAgentRuntime) RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bedrockagentruntime.RetrieveAndGenerateOutput), args.Error(1)
}

func TestMessagesClientGenerate(t *testing.T) {
	api := new(mockRuntime)
	var sent *bedrockruntime.InvokeModelInput
	api.On("InvokeModel", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(*bedrockruntime.InvokeModelInput)
		}).
		Return(&bedrockruntime.InvokeModelOutput{
			Body: []byte(`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"### Experience ###\nBuilt and maintained a checkout service."}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":12}}`),
		}, nil)

	client, err := NewMessagesClient(api, "", 4096, 0.7)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "### Experience ###\nBuilt and maintained a checkout service.", out)

	require.NotNil(t, sent)
	assert.Equal(t, DefaultModelID, aws.ToString(sent.ModelId))
	assert.Equal(t, "application/json", aws.ToString(sent.ContentType))
	assert.Equal(t, "application/json", aws.ToString(sent.Accept))

	var body map[string]any
	require.NoError(t, json.Unmarshal(sent.Body, &body))
	assert.Equal(t, AnthropicVersion, body["anthropic_version"])
	assert.EqualValues(t, 4096, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "the prompt", first["content"])
	api.AssertExpectations(t)
}

func TestMessagesClientMalformedResponses(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		emptyIs bool
	}{
		{name: "empty body", body: nil, emptyIs: true},
		{name: "not json", body: []byte("<html>"), emptyIs: false},
		{name: "no content", body: []byte(`{"content":[]}`), emptyIs: true},
		{name: "content without text", body: []byte(`{"content":[{"type":"tool_use"}]}`), emptyIs: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			api := new(mockRuntime)
			api.On("InvokeModel", mock.Anything, mock.Anything).Return(&bedrockruntime.InvokeModelOutput{Body: tt.body}, nil)
			client, err := NewMessagesClient(api, "model", 100, 0)
			require.NoError(t, err)

			out, err := client.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Equal(t, tt.emptyIs, errors.Is(err, llm.ErrEmptyResponse))
		})
	}
}

func TestMessagesClientAPIErrorCarriesCode(t *testing.T) {
	api := new(mockRuntime)
	api.On("InvokeModel", mock.Anything, mock.Anything).Return(nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "no access"})
	client, err := NewMessagesClient(api, "model", 100, 0)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
	var apiErr smithy.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestNewMessagesClientValidation(t *testing.T) {
	_, err := NewMessagesClient(nil, "m", 10, 0)
	assert.Error(t, err)
	_, err = NewMessagesClient(new(mockRuntime), "m", 0, 0)
	assert.Error(t, err)
}

func TestKnowledgeBaseClientGenerate(t *testing.T) {
	api := new(mockAgentRuntime)
	var sent *bedrockagentruntime.RetrieveAndGenerateInput
	api.On("RetrieveAndGenerate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(*bedrockagentruntime.RetrieveAndGenerateInput)
		}).
		Return(&bedrockagentruntime.RetrieveAndGenerateOutput{
			Output: &agenttypes.RetrieveAndGenerateOutput{Text: aws.String("### Experience ###\nShipped things.")},
		}, nil)

	client, err := NewKnowledgeBaseClient(api, "", "")
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "kb prompt")
	require.NoError(t, err)
	assert.Equal(t, "### Experience ###\nShipped things.", out)

	require.NotNil(t, sent)
	assert.Equal(t, "kb prompt", aws.ToString(sent.Input.Text))
	assert.Equal(t, agenttypes.RetrieveAndGenerateTypeKnowledgeBase, sent.RetrieveAndGenerateConfiguration.Type)
	assert.Equal(t, DefaultKnowledgeBaseID, aws.ToString(sent.RetrieveAndGenerateConfiguration.KnowledgeBaseConfiguration.KnowledgeBaseId))
	assert.Equal(t, DefaultKBModelARN, aws.ToString(sent.RetrieveAndGenerateConfiguration.KnowledgeBaseConfiguration.ModelArn))
}

func TestKnowledgeBaseClientFailures(t *testing.T) {
	api := new(mockAgentRuntime)
	api.On("RetrieveAndGenerate", mock.Anything, mock.Anything).Return(&bedrockagentruntime.RetrieveAndGenerateOutput{}, nil).Once()
	api.On("RetrieveAndGenerate", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout")).Once()

	client, err := NewKnowledgeBaseClient(api, "KB1", "arn:model")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)

	_, err = client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieve and generate kb=KB1 failed")
	api.AssertNumberOfCalls(t, "RetrieveAndGenerate", 2)
}
