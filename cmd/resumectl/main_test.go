package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/config"
	localstore "resume-builder/internal/shared/storage/object/local"
)

func withConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	orig := loadConfig
	loadConfig = func() config.Config { return cfg }
	t.Cleanup(func() {
		loadConfig = orig
		printPrompt = false
		summaryVariant = false
	})
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestReadInput(t *testing.T) {
	text, err := readInput(strings.NewReader("  built checkout service \n"), "-")
	require.NoError(t, err)
	assert.Equal(t, "built checkout service", text)

	path := filepath.Join(t.TempDir(), "exp.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	text, err = readInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	_, err = readInput(strings.NewReader(" \n"), "-")
	assert.Error(t, err)
}

func TestRenderCommandWritesDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "resume.docx")

	stdout, _, err := run(t, "", "render", "--out", out)

	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: wrote "+out)
	assert.Contains(t, stdout, "Name: Jane Doe")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestEnhancePrintPrompt(t *testing.T) {
	dir := t.TempDir()
	store := localstore.New(dir)
	_, err := store.SaveWithKey(context.Background(), "sample.txt", "text/plain", strings.NewReader("REFERENCE SAMPLE"))
	require.NoError(t, err)
	withConfig(t, config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   dir,
		ReferenceKeys:   []string{"sample.txt"},
		LLMProvider:     "bedrock",
		GenerationMode:  "invoke",
	})

	stdout, _, err := run(t, "built checkout service", "enhance", "--print-prompt")

	require.NoError(t, err)
	assert.Contains(t, stdout, "REFERENCE SAMPLE")
	assert.Contains(t, stdout, "built checkout service")
	assert.Contains(t, stdout, llm.ExperienceMarker)
}

func TestEnhanceWithoutCredentialsInDev(t *testing.T) {
	withConfig(t, config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "gemini",
		GenerationMode:  "invoke",
	})

	_, _, err := run(t, "built checkout service", "enhance")

	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestReferencesUploadAndShow(t *testing.T) {
	dir := t.TempDir()
	withConfig(t, config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   dir,
		ReferenceKeys:   []string{"sample.txt", "missing.pdf"},
	})
	src := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(src, []byte("Reference text"), 0o644))

	stdout, _, err := run(t, "", "references", "upload", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "uploaded sample.txt")

	stdout, stderr, err := run(t, "", "references", "show")
	require.NoError(t, err)
	assert.Equal(t, "Reference text\n", stdout)
	assert.Contains(t, stderr, "missing.pdf")
}
