package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/extract"
	"resume-builder/internal/references"
)

//nolint:gochecknoglobals // Cobra boilerplate
var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Manage the reference documents embedded in prompts",
}

//nolint:gochecknoglobals // Cobra boilerplate
var referencesUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload reference documents to the configured object store",
	Long: `Upload one or more files to the reference store. Each object key is the
file's base name, which is what REFERENCE_KEYS refers to.

Example:
  resumectl references upload "Federal Resume Samples.pdf" sample-resume.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReferencesUpload,
}

//nolint:gochecknoglobals // Cobra boilerplate
var referencesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch the configured reference documents and print their text",
	Args:  cobra.NoArgs,
	RunE:  runReferencesShow,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(referencesCmd)
	referencesCmd.AddCommand(referencesUploadCmd, referencesShowCmd)
}

func runReferencesUpload(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg := loadConfig()
	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "build object store")
	}

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		key := filepath.Base(path)
		n, err := store.SaveWithKey(ctx, key, extract.DetectMimeType(key, nil), f)
		_ = f.Close()
		if err != nil {
			return errors.Wrapf(err, "upload %s", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes)\n", key, n)
	}
	return nil
}

func runReferencesShow(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg := loadConfig()
	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "build object store")
	}

	corpus := (&references.Fetcher{Store: store, Keys: cfg.ReferenceKeys}).Fetch(ctx)
	for _, failure := range corpus.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", failure.Error())
	}
	if len(corpus.Loaded) == 0 {
		return errors.New("no reference documents could be loaded")
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), corpus.Text)
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
