package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

// PresetsRepository stores route presets keyed by their cycle-scoped
// route_name, e.g. "ลำปาง_1_2024".
type PresetsRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r PresetsRepository) store() store { return store{DB: r.DB, Dialect: r.Dialect} }

// ListBySuffix returns the rows whose route_name ends with suffix. An
// empty suffix lists every row. The suffix is matched literally; "_" is
// not a wildcard here.
func (r PresetsRepository) ListBySuffix(ctx context.Context, suffix string) ([]billing.StoredPreset, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return nil, errNoDB
	}

	query := `SELECT route_name, price, wage FROM route_presets`
	args := []any{}
	if suffix != "" {
		query += ` WHERE route_name LIKE ?`
		args = append(args, "%"+intdb.EscapeLike(suffix))
	}
	query += ` ORDER BY route_name ASC`

	rows, err := db.QueryContext(ctx, s.dialect().Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list presets %q: %w", suffix, err)
	}
	defer rows.Close()

	out := []billing.StoredPreset{}
	for rows.Next() {
		var (
			name        sql.NullString
			price, wage sql.NullFloat64
		)
		if err := rows.Scan(&name, &price, &wage); err != nil {
			return out, fmt.Errorf("scan preset: %w", err)
		}
		if !billing.MatchesSuffix(name.String, suffix) {
			continue
		}
		out = append(out, billing.StoredPreset{
			RouteName: name.String,
			Price:     billing.ParseOrZero(price.Float64),
			Wage:      billing.ParseOrZero(wage.Float64),
		})
	}
	return out, rows.Err()
}

// Upsert creates or replaces the preset stored under routeName.
func (r PresetsRepository) Upsert(ctx context.Context, routeName string, price, wage float64) error {
	routeName = strings.TrimSpace(routeName)
	if routeName == "" {
		return domain.Invalid("route", "required")
	}
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	d := s.dialect()
	query := `INSERT INTO route_presets (route_name, price, wage) VALUES (?, ?, ?)` + d.Upsert("route_name", "price", "wage")
	if _, err := db.ExecContext(ctx, d.Rebind(query), routeName, price, wage); err != nil {
		return fmt.Errorf("upsert preset: %w", err)
	}
	return nil
}

// Delete removes the preset with exactly routeName.
func (r PresetsRepository) Delete(ctx context.Context, routeName string) error {
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	res, err := db.ExecContext(ctx, s.dialect().Rebind(`DELETE FROM route_presets WHERE route_name = ?`), routeName)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("preset", routeName)
	}
	return nil
}
