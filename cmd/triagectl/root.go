package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"triage-backend/internal/bootstrap"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/storage/db"
)

type options struct {
	seed       uint64
	tablesFile string
	rulesFile  string
	offline    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "triagectl",
		Short:         "Analyze symptoms and preview recommendations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "seed for recommendation phrasing (0 uses RECOMMEND_SEED or the clock)")
	root.PersistentFlags().StringVar(&opts.tablesFile, "tables", "", "recommendation tables YAML (overrides RECOMMEND_TABLES_FILE)")
	root.PersistentFlags().StringVar(&opts.rulesFile, "rules", "", "risk rules YAML (overrides RISK_RULES_FILE)")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "ignore DATABASE_URL and use the built-in catalog")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newRecommendCmd(opts),
		newConditionsCmd(opts),
		newTokenCmd(),
	)
	return root
}

func (o *options) build(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.seed != 0 {
		cfg.RecommendSeed = o.seed
	}
	if o.tablesFile != "" {
		cfg.RecommendTablesFile = o.tablesFile
	}
	if o.rulesFile != "" {
		cfg.RiskRulesFile = o.rulesFile
	}
	if o.offline {
		cfg.DatabaseURL = ""
	}
	return bootstrap.BuildCore(ctx, cfg, db.DefaultCLIOptions())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
