package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/llm"
	"resume-builder/internal/references"
	"resume-builder/internal/resumes"
)

//nolint:gochecknoglobals // Cobra boilerplate
var summaryVariant bool

//nolint:gochecknoglobals // Cobra boilerplate
var printPrompt bool

//nolint:gochecknoglobals // Cobra boilerplate
var enhanceCmd = &cobra.Command{
	Use:   "enhance [file]",
	Short: "Rewrite a work experience section with the configured model",
	Long: `Read work experience text from a file (or stdin when the file is "-" or
omitted), send it to the configured model and print the extracted section.

Example:
  resumectl enhance experience.txt
  echo "built checkout service" | resumectl enhance --summary`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnhance,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(enhanceCmd)
	enhanceCmd.Flags().BoolVar(&summaryVariant, "summary", false, "Write a professional summary instead of the experience section")
	enhanceCmd.Flags().BoolVar(&printPrompt, "print-prompt", false, "Print the prompt and exit without calling the model")
}

func runEnhance(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	experience, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	variant := bootstrap.ExperienceVariant(cfg)
	if summaryVariant {
		variant = llm.VariantSummary
	}

	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "build object store")
	}
	fetcher := &references.Fetcher{Store: store, Keys: cfg.ReferenceKeys}

	if printPrompt {
		referenceText := ""
		if cfg.UsesReferenceText() && variant.UsesReferenceText() {
			referenceText = fetcher.Fetch(ctx).Text
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), llm.BuildPrompt(variant, experience, referenceText))
		return err
	}

	gen, err := bootstrap.BuildGenerator(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "build generator")
	}
	svc := &resumes.Service{
		References:    fetcher,
		Generator:     gen,
		Variant:       variant,
		UseReferences: cfg.UsesReferenceText(),
	}

	section, warnings, err := svc.Enhance(ctx, variant, experience)
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), section)
	return err
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("no work experience text provided")
	}
	return text, nil
}
