package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port                string   `env:"PORT" envDefault:"8080"`
	Env                 string   `env:"ENV" envDefault:"dev"`
	CORSAllowOrigin     []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	DatabaseURL         string   `env:"DATABASE_URL"`
	JWTSecret           string   `env:"JWT_SECRET"`
	RateLimitRPS        float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst      int      `env:"RATE_LIMIT_BURST" envDefault:"10"`
	RecommendTablesFile string   `env:"RECOMMEND_TABLES_FILE"`
	RecommendSeed       uint64   `env:"RECOMMEND_SEED" envDefault:"0"`
	RiskRulesFile       string   `env:"RISK_RULES_FILE"`
	LogFile             string   `env:"LOG_FILE"`
	LogMaxSizeMB        int      `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups       int      `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays       int      `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`
	UploadMaxBytes      int64    `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`
}

// Load reads configuration from environment variables with sensible defaults.
// Local .env files are loaded first without overriding the real environment.
func Load() (Config, error) {
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.CORSAllowOrigin = splitAndTrim(cfg.CORSAllowOrigin)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.RateLimitBurst < 0 {
		cfg.RateLimitBurst = 0
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 5 << 20
	}
	return cfg, nil
}

// IsProduction reports whether ENV resolved to production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func splitAndTrim(parts []string) []string {
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
