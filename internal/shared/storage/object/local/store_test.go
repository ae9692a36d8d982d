package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/storage/object"
)

func TestSaveThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "Federal Resume Samples.txt", "text/plain", strings.NewReader("reference text"))
	require.NoError(t, err)
	assert.EqualValues(t, len("reference text"), n)

	rc, err := store.Open(ctx, "Federal Resume Samples.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "reference text", string(data))
}

func TestOpenMissingKey(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "../etc/passwd")
	require.Error(t, err)
	_, err = store.SaveWithKey(context.Background(), "/abs.txt", "text/plain", strings.NewReader("x"))
	require.Error(t, err)
}

func TestOpenHonorsCancelledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
