package health

import (
	"context"
	"database/sql"
	"time"

	"triage-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Status is the payload returned by the health endpoint.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. A nil database reports "disabled".
func NewService(database *sql.DB) *Service {
	return &Service{DB: database}
}

// Status reports process and catalog database health.
func (s *Service) Status(ctx context.Context) Status {
	if s == nil || s.DB == nil {
		return Status{OK: true, Database: "disabled"}
	}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		return Status{OK: false, Database: "unavailable"}
	}
	return Status{OK: true, Database: "ok"}
}
