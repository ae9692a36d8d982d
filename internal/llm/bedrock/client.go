package bedrock

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/pkg/errors"
)

// Clients bundles the two Bedrock SDK clients built from one AWS config.
type Clients struct {
	Runtime      *bedrockruntime.Client
	AgentRuntime *bedrockagentruntime.Client
}

// NewClients loads the default AWS credential chain for region and builds the
// Bedrock Runtime and Agent Runtime clients.
func NewClients(ctx context.Context, region string) (Clients, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return Clients{}, errors.Wrap(err, "load aws config")
	}
	return Clients{
		Runtime:      bedrockruntime.NewFromConfig(cfg),
		AgentRuntime: bedrockagentruntime.NewFromConfig(cfg),
	}, nil
}
