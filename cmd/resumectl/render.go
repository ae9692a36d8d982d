package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-builder/internal/extract"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderOut string

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render [resume.json]",
	Short: "Render a DOCX resume",
	Long: `Render a DOCX from a JSON resume file, or from a built-in sample when no
file is given. The written document is read back to check that it parses.

Example:
  resumectl render --out ./out/resume.docx
  resumectl render jane.json --out jane.docx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderOut, "out", "./out/"+render.FileName, "Output path for the generated DOCX")
}

func runRender(cmd *cobra.Command, args []string) error {
	resume := sampleResume()
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "read %s", args[0])
		}
		resume = model.Resume{}
		if err := json.Unmarshal(data, &resume); err != nil {
			return errors.Wrapf(err, "decode %s", args[0])
		}
	}

	docxBytes, err := render.RenderResume(resume)
	if err != nil {
		return errors.Wrap(err, "render failed")
	}
	if err := writeDocx(renderOut, docxBytes); err != nil {
		return errors.Wrap(err, "write failed")
	}
	if err := validateRenderedDocx(renderOut); err != nil {
		return errors.Wrap(err, "render validation failed")
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s\n\n%s", renderOut, render.RenderText(resume))
	return err
}

func writeDocx(outPath string, docxBytes []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, docxBytes, 0o644)
}

func validateRenderedDocx(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text, err := extract.ExtractTextFromBytes(context.Background(), data, render.MimeType, filepath.Base(path))
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("rendered document has no text")
	}
	return nil
}

func sampleResume() model.Resume {
	return model.Resume{
		FullName:   "Jane Doe",
		Email:      "jane.doe@example.com",
		Phone:      "(555) 010-0100",
		Education:  "B.S. Computer Science, State University",
		Experience: "Built and maintained a checkout service handling card and wallet payments.\nLed the migration of order processing to an event driven design.",
		Skills:     "Go, Python, SQL\nAWS, Docker, Terraform\nLeadership, Communication",
	}
}
