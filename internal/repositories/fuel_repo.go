package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

// FuelRefillsRepository stores fuel top-ups. Refills are never edited,
// only added or removed.
type FuelRefillsRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r FuelRefillsRepository) store() store { return store{DB: r.DB, Dialect: r.Dialect} }

func (r FuelRefillsRepository) List(ctx context.Context) ([]billing.FuelRefill, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT id, date, amount, notes FROM fuel_refills ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fuel refills: %w", err)
	}
	defer rows.Close()

	out := []billing.FuelRefill{}
	for rows.Next() {
		var (
			rec    billing.FuelRefill
			date   sql.NullString
			amount sql.NullFloat64
			notes  sql.NullString
		)
		if err := rows.Scan(&rec.ID, &date, &amount, &notes); err != nil {
			return out, fmt.Errorf("scan fuel refill: %w", err)
		}
		rec.Date = billing.DatePart(date.String)
		rec.Amount = billing.ParseOrZero(amount.Float64)
		rec.Notes = billing.NormalizeName(notes.String)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r FuelRefillsRepository) Create(ctx context.Context, rec billing.FuelRefill) (billing.FuelRefill, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return rec, errNoDB
	}
	id, err := s.dialect().InsertID(ctx, db, `INSERT INTO fuel_refills (date, amount, notes) VALUES (?, ?, ?)`,
		rec.Date, rec.Amount, rec.Notes)
	if intdb.IsDuplicateKey(err) {
		return rec, domain.Conflict("fuel refill", err)
	}
	if err != nil {
		return rec, fmt.Errorf("insert fuel refill: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r FuelRefillsRepository) Delete(ctx context.Context, id int64) error {
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	res, err := db.ExecContext(ctx, s.dialect().Rebind(`DELETE FROM fuel_refills WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete fuel refill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("fuel refill", id)
	}
	return nil
}
