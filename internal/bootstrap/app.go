package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/analyzer"
	"triage-backend/internal/conditions"
	"triage-backend/internal/recommend"
	"triage-backend/internal/shared/auth"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/server"
	"triage-backend/internal/shared/storage/db"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/triage"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Keys          *auth.Keys
	Engine        *recommend.Engine
	Analyzer      *analyzer.KeywordAnalyzer
	Catalog       *conditions.Service
	Triage        *triage.Service
	TriageHandler *triage.Handler
}

// Build prepares every dependency and the HTTP router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildCore(ctx, cfg, db.DefaultServerOptions())
	if err != nil {
		return nil, err
	}

	keys, err := auth.NewKeys(cfg.JWTSecret, cfg.Env)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Keys = keys
	app.TriageHandler = triage.NewHandler(app.Triage, cfg.UploadMaxBytes)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Keys:     keys,
		DB:       app.DB,
		Handlers: []server.RouteRegistrar{app.TriageHandler},
	})
	return app, nil
}

// BuildCore wires the catalog, analyzer, engine and triage service without
// any HTTP surface. Command-line tools use it directly.
func BuildCore(ctx context.Context, cfg config.Config, dbOpts db.Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg, dbOpts)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, DB: sqlDB}

	var repo conditions.Repo
	if sqlDB != nil {
		repo = &conditions.PGRepo{DB: sqlDB}
	} else {
		repo = conditions.NewMemoryRepo(conditions.Seed()...)
	}
	app.Catalog = conditions.NewService(repo)
	if sqlDB != nil {
		if err := seedEmptyCatalog(ctx, app.Catalog); err != nil {
			app.Close()
			return nil, err
		}
	}

	rules, err := buildRules(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	a, err := analyzer.NewKeywordAnalyzer(app.Catalog, analyzer.KeywordMatcher{}, rules)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Analyzer = a

	engine, err := buildEngine(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Engine = engine
	app.Triage = triage.NewService(a, engine, app.Catalog)
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.IsProduction() {
			telemetry.Warn("bootstrap.catalog_memory", map[string]any{"reason": "DATABASE_URL empty in production"})
		} else {
			telemetry.Info("bootstrap.catalog_memory", map[string]any{"reason": "DATABASE_URL empty"})
		}
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(opts))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.catalog_memory", map[string]any{"reason": "database connect failed", "err": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// seedEmptyCatalog loads the built-in conditions when the catalog table is empty,
// e.g. after the seed migration rows were deleted.
func seedEmptyCatalog(ctx context.Context, catalog *conditions.Service) error {
	items, err := catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	if len(items) > 0 {
		return nil
	}
	seed := conditions.Seed()
	if err := catalog.Seed(ctx, seed); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	telemetry.Info("bootstrap.catalog_seeded", map[string]any{"count": len(seed)})
	return nil
}

func buildEngine(cfg config.Config) (*recommend.Engine, error) {
	tables, err := recommend.DefaultTables()
	if path := strings.TrimSpace(cfg.RecommendTablesFile); path != "" {
		tables, err = recommend.LoadTablesFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("recommendation tables: %w", err)
	}

	var opts []recommend.Option
	if cfg.RecommendSeed != 0 {
		opts = append(opts, recommend.WithSource(recommend.NewLockedSource(cfg.RecommendSeed)))
	}
	return recommend.New(tables, opts...)
}

func buildRules(cfg config.Config) (*analyzer.RiskRules, error) {
	if path := strings.TrimSpace(cfg.RiskRulesFile); path != "" {
		return analyzer.LoadRulesFile(path)
	}
	return analyzer.NewRiskRules(analyzer.DefaultRules)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
