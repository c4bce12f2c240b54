package conditions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo stores the catalog in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byName map[string]Condition
}

// NewMemoryRepo constructs a MemoryRepo holding the given conditions.
func NewMemoryRepo(seed ...Condition) *MemoryRepo {
	r := &MemoryRepo{byName: make(map[string]Condition, len(seed))}
	now := time.Now().UTC()
	for _, c := range seed {
		c.Name = NormalizeName(c.Name)
		if c.Name == "" {
			continue
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}
		r.byName[c.Name] = clone(c)
	}
	return r
}

// List returns all conditions sorted by name.
func (r *MemoryRepo) List(ctx context.Context) ([]Condition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Condition, 0, len(r.byName))
	for _, c := range r.byName {
		out = append(out, clone(c))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get returns a condition by name.
func (r *MemoryRepo) Get(ctx context.Context, name string) (Condition, error) {
	if err := ctx.Err(); err != nil {
		return Condition{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[NormalizeName(name)]
	if !ok {
		return Condition{}, ErrNotFound
	}
	return clone(c), nil
}

// Upsert inserts or replaces a condition.
func (r *MemoryRepo) Upsert(ctx context.Context, condition Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	condition.Name = NormalizeName(condition.Name)
	if strings.TrimSpace(condition.Name) == "" {
		return ErrInvalidName
	}
	condition.UpdatedAt = time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[condition.Name] = clone(condition)
	return nil
}

func clone(c Condition) Condition {
	c.CommonCauses = append([]string(nil), c.CommonCauses...)
	c.RiskFactors = append([]string(nil), c.RiskFactors...)
	c.Symptoms = append([]string(nil), c.Symptoms...)
	return c
}
