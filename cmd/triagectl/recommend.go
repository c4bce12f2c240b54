package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"triage-backend/internal/analyzer"
)

func newRecommendCmd(opts *options) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate a recommendation bundle from analyzer JSON",
		Long: `Reads analyzer output such as
  {"conditions": ["flu"], "details": {"flu": {"recommendations": "rest"}}, "risk_level": "low"}
from --input (or stdin) and prints the recommendation bundle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("decode analyzer output: %w", err)
			}
			set, risk, err := analyzer.Normalize(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := opts.build(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			bundle, err := app.Triage.Recommend(ctx, set, risk)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), bundle)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "analyzer JSON file (- for stdin)")
	return cmd
}
