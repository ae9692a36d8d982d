package s3

import (
	"context"
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "sample-resume.pdf", want: "sample-resume.pdf"},
		{name: "simple prefix", prefix: "refs", key: "sample-resume.pdf", want: "refs/sample-resume.pdf"},
		{name: "prefix trailing slash", prefix: "refs/", key: "sample-resume.pdf", want: "refs/sample-resume.pdf"},
		{name: "key with spaces", prefix: "/refs/", key: "/Federal Resume Samples.pdf", want: "refs/Federal Resume Samples.pdf"},
		{name: "nested prefix", prefix: "refs/v1", key: "a.pdf", want: "refs/v1/a.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, applyPrefix(tt.prefix, tt.key))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", &s3types.NoSuchKey{})))
	assert.True(t, isNotFound(&s3types.NotFound{}))
	assert.False(t, isNotFound(errors.New("access denied")))
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}
