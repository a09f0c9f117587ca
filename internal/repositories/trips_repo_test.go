package repositories

import (
	"context"
	"database/sql"
	"testing"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripCols = []string{"id", "date", "driver_name", "route", "price", "fuel", "wage", "basket", "maintenance",
	"advance", "staff_share", "basket_count", "fuel_bill_url", "maintenance_bill_url", "basket_bill_url"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestTripsListAppliesColumnMapping(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM trips ORDER BY date DESC").
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, "2024-01-05", " สมชาย  ใจดี ", "R1", "1000.00", 100.0, 400.0, 300.0, nil, 150.0, 200.0, 95, "https://f/1.jpg", nil, nil).
			AddRow(2, []byte("2024-01-06T00:00:00Z"), nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	repo := TripsRepository{DB: db, Dialect: intdb.MySQL}
	trips, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}

	got := trips[0]
	if got.StaffShare != 150 {
		t.Fatalf("advance column must map to StaffShare, got %v", got.StaffShare)
	}
	if got.BasketShare != 200 {
		t.Fatalf("staff_share column must map to BasketShare, got %v", got.BasketShare)
	}
	if got.DriverName != "สมชาย ใจดี" || got.BasketCount != 95 || got.FuelBillURL != "https://f/1.jpg" {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if got.Profit != (1000+300)-(100+400+0+200) {
		t.Fatalf("profit not recomputed: %v", got.Profit)
	}
	if trips[1].Date != "2024-01-06" || trips[1].Price != 0 {
		t.Fatalf("nullable row not normalized: %+v", trips[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripsCreateWritesSwappedColumns(t *testing.T) {
	db, mock := newMock(t)
	trip := billing.Trip{Date: "2024-01-05", DriverName: "A", Route: "R1", Price: 1000, StaffShare: 150, BasketShare: 200, BasketCount: 95}

	mock.ExpectExec("INSERT INTO trips").
		WithArgs("2024-01-05", "A", "R1", 1000.0, 0.0, 0.0, 0.0, 0.0, 150.0, 200.0, 95, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(7, 1))

	saved, err := TripsRepository{DB: db, Dialect: intdb.MySQL}.Create(context.Background(), trip)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if saved.ID != 7 {
		t.Fatalf("expected id 7, got %d", saved.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripsCreatePostgresReturnsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO trips (.+) VALUES \(\$1, (.+)\$14\) RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	saved, err := TripsRepository{DB: db, Dialect: intdb.Postgres}.Create(context.Background(), billing.Trip{Date: "2024-01-05"})
	if err != nil || saved.ID != 11 {
		t.Fatalf("Create = %d, %v", saved.ID, err)
	}
}

func TestTripsUpdateUnchangedRowIsNotMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db, Dialect: intdb.MySQL}

	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id = ?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(tripCols).AddRow(3, "2024-01-05", "A", "R1", 1, 0, 0, 0, 0, 0, 0, 0, nil, nil, nil))
	if err := repo.Update(context.Background(), billing.Trip{ID: 3, Date: "2024-01-05"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id = ?").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(tripCols))
	err := repo.Update(context.Background(), billing.Trip{ID: 4, Date: "2024-01-05"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripsDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM trips WHERE id").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := TripsRepository{DB: db, Dialect: intdb.MySQL}.Delete(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
