package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

// tripColumns is the stored column order. advance holds the cash advance
// (Trip.StaffShare) and staff_share holds the basket split
// (Trip.BasketShare).
const tripColumns = `id, date, driver_name, route, price, fuel, wage, basket, maintenance,
	advance, staff_share, basket_count, fuel_bill_url, maintenance_bill_url, basket_bill_url`

type TripsRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r TripsRepository) store() store { return store{DB: r.DB, Dialect: r.Dialect} }

// List returns every trip, newest first.
func (r TripsRepository) List(ctx context.Context) ([]billing.Trip, error) {
	return r.query(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY date DESC, id DESC`)
}

func (r TripsRepository) Get(ctx context.Context, id int64) (billing.Trip, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return billing.Trip{}, errNoDB
	}
	row := db.QueryRowContext(ctx, s.dialect().Rebind(`SELECT `+tripColumns+` FROM trips WHERE id = ?`), id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return billing.Trip{}, domain.NotFound("trip", id)
	}
	if err != nil {
		return billing.Trip{}, fmt.Errorf("get trip: %w", err)
	}
	return t, nil
}

func (r TripsRepository) query(ctx context.Context, query string, args ...any) ([]billing.Trip, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, s.dialect().Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []billing.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanTrip reads a row into a raw record keyed by column name and lets
// the normalizer apply the column mapping.
func scanTrip(row scanner) (billing.Trip, error) {
	var (
		id                                                     int64
		date, driver, route                                    sql.NullString
		price, fuel, wage, basket, maintenance, advance, share sql.NullFloat64
		basketCount                                            sql.NullInt64
		fuelURL, maintenanceURL, basketURL                     sql.NullString
	)
	if err := row.Scan(&id, &date, &driver, &route, &price, &fuel, &wage, &basket, &maintenance,
		&advance, &share, &basketCount, &fuelURL, &maintenanceURL, &basketURL); err != nil {
		return billing.Trip{}, err
	}
	raw := billing.RawRecord{
		"id":                   id,
		"date":                 nullString(date),
		"driver_name":          nullString(driver),
		"route":                nullString(route),
		"price":                nullFloat(price),
		"fuel":                 nullFloat(fuel),
		"wage":                 nullFloat(wage),
		"basket":               nullFloat(basket),
		"maintenance":          nullFloat(maintenance),
		"advance":              nullFloat(advance),
		"staff_share":          nullFloat(share),
		"basket_count":         nullInt(basketCount),
		"fuel_bill_url":        nullString(fuelURL),
		"maintenance_bill_url": nullString(maintenanceURL),
		"basket_bill_url":      nullString(basketURL),
	}
	return *billing.Normalize(raw), nil
}

func tripArgs(t billing.Trip) []any {
	return []any{
		t.Date,
		t.DriverName,
		t.Route,
		t.Price,
		t.Fuel,
		t.Wage,
		t.Basket,
		t.Maintenance,
		t.StaffShare,
		t.BasketShare,
		t.BasketCount,
		intdb.NullIfEmpty(t.FuelBillURL),
		intdb.NullIfEmpty(t.MaintenanceBillURL),
		intdb.NullIfEmpty(t.BasketBillURL),
	}
}

// Create stores a trip and returns it with its new id.
func (r TripsRepository) Create(ctx context.Context, t billing.Trip) (billing.Trip, error) {
	s := r.store()
	db := s.db()
	if db == nil {
		return billing.Trip{}, errNoDB
	}
	id, err := s.dialect().InsertID(ctx, db, `INSERT INTO trips
		(date, driver_name, route, price, fuel, wage, basket, maintenance,
		 advance, staff_share, basket_count, fuel_bill_url, maintenance_bill_url, basket_bill_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, tripArgs(t)...)
	if intdb.IsDuplicateKey(err) {
		return billing.Trip{}, domain.Conflict("trip", err)
	}
	if err != nil {
		return billing.Trip{}, fmt.Errorf("insert trip: %w", err)
	}
	t.ID = id
	return t, nil
}

// Update overwrites every stored field of the trip.
func (r TripsRepository) Update(ctx context.Context, t billing.Trip) error {
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	args := append(tripArgs(t), t.ID)
	res, err := db.ExecContext(ctx, s.dialect().Rebind(`UPDATE trips SET
		date = ?, driver_name = ?, route = ?, price = ?, fuel = ?, wage = ?, basket = ?, maintenance = ?,
		advance = ?, staff_share = ?, basket_count = ?, fuel_bill_url = ?, maintenance_bill_url = ?, basket_bill_url = ?
		WHERE id = ?`), args...)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 for an unchanged row, so confirm the id exists.
		if _, err := r.Get(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r TripsRepository) Delete(ctx context.Context, id int64) error {
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	res, err := db.ExecContext(ctx, s.dialect().Rebind(`DELETE FROM trips WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("trip", id)
	}
	return nil
}
