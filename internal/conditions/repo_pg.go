package conditions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `name, description, common_causes, risk_factors, severity, symptoms, recommendations, updated_at`

// List returns all catalog conditions ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]Condition, error) {
	query := `SELECT ` + selectColumns + `
FROM conditions
ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Condition{}
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a condition by normalized name.
func (r *PGRepo) Get(ctx context.Context, name string) (Condition, error) {
	query := `SELECT ` + selectColumns + `
FROM conditions
WHERE name = $1
LIMIT 1`
	c, err := scanCondition(r.DB.QueryRowContext(ctx, query, NormalizeName(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Condition{}, ErrNotFound
		}
		return Condition{}, err
	}
	return c, nil
}

// Upsert inserts or replaces a condition keyed by name.
func (r *PGRepo) Upsert(ctx context.Context, condition Condition) error {
	name := NormalizeName(condition.Name)
	if name == "" {
		return ErrInvalidName
	}
	causes, err := marshalJSONB(condition.CommonCauses)
	if err != nil {
		return err
	}
	factors, err := marshalJSONB(condition.RiskFactors)
	if err != nil {
		return err
	}
	symptoms, err := marshalJSONB(condition.Symptoms)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO conditions (name, description, common_causes, risk_factors, severity, symptoms, recommendations, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (name) DO UPDATE SET
  description = EXCLUDED.description,
  common_causes = EXCLUDED.common_causes,
  risk_factors = EXCLUDED.risk_factors,
  severity = EXCLUDED.severity,
  symptoms = EXCLUDED.symptoms,
  recommendations = EXCLUDED.recommendations,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		name,
		condition.Description,
		causes,
		factors,
		condition.Severity,
		symptoms,
		nullableString(condition.Recommendations),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCondition(row rowScanner) (Condition, error) {
	var c Condition
	var causes, factors, symptoms []byte
	var recommendations sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(
		&c.Name,
		&c.Description,
		&causes,
		&factors,
		&c.Severity,
		&symptoms,
		&recommendations,
		&updatedAt,
	); err != nil {
		return Condition{}, err
	}
	var err error
	if c.CommonCauses, err = unmarshalList(causes); err != nil {
		return Condition{}, fmt.Errorf("decode common_causes for %s: %w", c.Name, err)
	}
	if c.RiskFactors, err = unmarshalList(factors); err != nil {
		return Condition{}, fmt.Errorf("decode risk_factors for %s: %w", c.Name, err)
	}
	if c.Symptoms, err = unmarshalList(symptoms); err != nil {
		return Condition{}, fmt.Errorf("decode symptoms for %s: %w", c.Name, err)
	}
	if recommendations.Valid {
		c.Recommendations = recommendations.String
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	} else {
		c.UpdatedAt = time.Now().UTC()
	}
	return c, nil
}

func marshalJSONB(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
