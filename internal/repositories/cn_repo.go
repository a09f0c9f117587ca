package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

type CNRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r CNRepository) store() store { return store{DB: r.DB, Dialect: r.Dialect} }

// List returns CN deductions keyed by normalized driver name. A missing
// table reads as no deductions.
func (r CNRepository) List(ctx context.Context) (billing.CNMap, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return nil, errNoDB
	}
	if !s.dialect().HasTable(ctx, db, "cn_deductions") {
		return billing.CNMap{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT driver_name, amount FROM cn_deductions`)
	if err != nil {
		return nil, fmt.Errorf("list cn deductions: %w", err)
	}
	defer rows.Close()

	raw := map[string]float64{}
	for rows.Next() {
		var (
			name   sql.NullString
			amount sql.NullFloat64
		)
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, fmt.Errorf("scan cn deduction: %w", err)
		}
		raw[name.String] += amount.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return billing.NewCNMap(raw), nil
}

// Set stores the deduction for a driver.
func (r CNRepository) Set(ctx context.Context, driver string, amount float64) error {
	driver = billing.NormalizeName(driver)
	if driver == "" {
		return domain.Invalid("driver", "required")
	}
	if amount < 0 {
		return domain.Invalid("amount", "must not be negative")
	}
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	d := s.dialect()
	query := `INSERT INTO cn_deductions (driver_name, amount) VALUES (?, ?)` + d.Upsert("driver_name", "amount")
	if _, err := db.ExecContext(ctx, d.Rebind(query), driver, amount); err != nil {
		return fmt.Errorf("set cn deduction: %w", err)
	}
	return nil
}
