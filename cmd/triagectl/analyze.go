package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"triage-backend/internal/extract"
	"triage-backend/internal/triage"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		file     string
		followUp []string
	)
	cmd := &cobra.Command{
		Use:   "analyze [symptoms...]",
		Short: "Analyze free-text symptoms or a symptom note file",
		Example: `  triagectl analyze "fever, cough and chills"
  triagectl analyze "frequent urination" --follow-up "blurred vision"
  triagectl analyze --file notes.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := opts.build(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			var result triage.Result
			switch {
			case file != "":
				data, err := readInput(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				name := filepath.Base(file)
				if !extract.Supported("", name, data) {
					return fmt.Errorf("%s: %w", file, extract.ErrUnsupportedMedia)
				}
				result, err = app.Triage.AnalyzeDocument(ctx, data, "", name)
				if err != nil {
					return err
				}
			case len(followUp) > 0:
				result, err = app.Triage.FinalAnalysis(ctx, args, followUp)
				if err != nil {
					return err
				}
			default:
				result, err = app.Triage.InitialAnalysis(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "symptom note to analyze (PDF, DOCX or text; - for stdin)")
	cmd.Flags().StringArrayVar(&followUp, "follow-up", nil, "follow-up answer; runs a final analysis (repeatable)")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
