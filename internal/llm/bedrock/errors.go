package bedrock

import (
	"errors"

	"github.com/aws/smithy-go"
	pkgerrors "github.com/pkg/errors"

	"resume-builder/internal/shared/telemetry"
)

// describeAPIError wraps SDK failures, keeping the service error code in the
// message so the user-facing error names what went wrong.
func describeAPIError(err error, op string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return pkgerrors.Wrapf(err, "%s failed (%s)", op, apiErr.ErrorCode())
	}
	return pkgerrors.Wrapf(err, "%s failed", op)
}

func logUsage(modelID, stopReason string, u *usage) {
	fields := map[string]any{
		"model":       modelID,
		"stop_reason": stopReason,
	}
	if u != nil {
		fields["input_tokens"] = u.InputTokens
		fields["output_tokens"] = u.OutputTokens
	}
	telemetry.Info("llm.response", fields)
}

func logCitations(knowledgeBaseID string, citations int) {
	telemetry.Info("llm.response", map[string]any{
		"knowledge_base_id": knowledgeBaseID,
		"citations":         citations,
	})
}
