package conditions

import (
	"context"
	"errors"
	"strings"
)

// Service serves the condition catalog.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// List returns every catalog condition.
func (s *Service) List(ctx context.Context) ([]Condition, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("conditions service not configured")
	}
	return s.Repo.List(ctx)
}

// Get returns a single condition.
func (s *Service) Get(ctx context.Context, name string) (Condition, error) {
	if s == nil || s.Repo == nil {
		return Condition{}, errors.New("conditions service not configured")
	}
	if strings.TrimSpace(name) == "" {
		return Condition{}, ErrInvalidName
	}
	return s.Repo.Get(ctx, name)
}

// Metadata returns the descriptive record for a condition. Unknown conditions
// yield an empty record rather than an error.
func (s *Service) Metadata(ctx context.Context, name string) (Metadata, error) {
	c, err := s.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidName) {
			return Metadata{}, nil
		}
		return Metadata{}, err
	}
	return c.Metadata(), nil
}

// Seed upserts the given conditions, typically the built-in catalog.
func (s *Service) Seed(ctx context.Context, items []Condition) error {
	if s == nil || s.Repo == nil {
		return errors.New("conditions service not configured")
	}
	for _, c := range items {
		if err := s.Repo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
