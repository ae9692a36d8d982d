package bedrock

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/pkg/errors"

	"resume-builder/internal/llm"
)

const (
	DefaultKnowledgeBaseID = "FROEVHOMYY"
	DefaultKBModelARN      = "amazon.titan-text-premier-v1:0"
)

// RetrieveAndGenerateAPI is the slice of the Bedrock Agent Runtime client
// KnowledgeBaseClient uses.
type RetrieveAndGenerateAPI interface {
	RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// KnowledgeBaseClient asks Bedrock to retrieve from a managed knowledge base
// and generate in one call; retrieval happens server side.
type KnowledgeBaseClient struct {
	api             RetrieveAndGenerateAPI
	knowledgeBaseID string
	modelARN        string
}

// NewKnowledgeBaseClient constructs a KnowledgeBaseClient.
func NewKnowledgeBaseClient(api RetrieveAndGenerateAPI, knowledgeBaseID, modelARN string) (*KnowledgeBaseClient, error) {
	if api == nil {
		return nil, errors.New("bedrock agent runtime client is required")
	}
	if strings.TrimSpace(knowledgeBaseID) == "" {
		knowledgeBaseID = DefaultKnowledgeBaseID
	}
	if strings.TrimSpace(modelARN) == "" {
		modelARN = DefaultKBModelARN
	}
	return &KnowledgeBaseClient{
		api:             api,
		knowledgeBaseID: knowledgeBaseID,
		modelARN:        modelARN,
	}, nil
}

// Generate runs RetrieveAndGenerate and returns the generated output text.
func (c *KnowledgeBaseClient) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := c.api.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &agenttypes.RetrieveAndGenerateInput{
			Text: aws.String(prompt),
		},
		RetrieveAndGenerateConfiguration: &agenttypes.RetrieveAndGenerateConfiguration{
			Type: agenttypes.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &agenttypes.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(c.knowledgeBaseID),
				ModelArn:        aws.String(c.modelARN),
			},
		},
	})
	if err != nil {
		return "", describeAPIError(err, "retrieve and generate kb="+c.knowledgeBaseID)
	}
	if out == nil || out.Output == nil || out.Output.Text == nil {
		return "", errors.Wrap(llm.ErrEmptyResponse, "retrieve and generate returned no output")
	}
	logCitations(c.knowledgeBaseID, len(out.Citations))

	return aws.ToString(out.Output.Text), nil
}

var _ llm.Generator = (*KnowledgeBaseClient)(nil)
