package repositories

import (
	"context"
	"testing"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCNListMissingTable(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`information_schema\.tables`).WithArgs("cn_deductions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	cn, err := CNRepository{DB: db, Dialect: intdb.MySQL}.List(context.Background())
	if err != nil || len(cn) != 0 {
		t.Fatalf("expected empty map, got %v %v", cn, err)
	}
}

func TestCNListNormalizesNames(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`information_schema\.tables`).WithArgs("cn_deductions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("cn_deductions"))
	mock.ExpectQuery("SELECT driver_name, amount FROM cn_deductions").
		WillReturnRows(sqlmock.NewRows([]string{"driver_name", "amount"}).
			AddRow(" สมชาย  ใจดี", 50.0).
			AddRow("B", 20.0))

	cn, err := CNRepository{DB: db, Dialect: intdb.MySQL}.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cn.For("สมชาย ใจดี") != 50 || cn.For("B") != 20 {
		t.Fatalf("unexpected cn map: %v", cn)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	db, mock := newMock(t)
	repo := PrefsRepository{DB: db, Dialect: intdb.MySQL}
	ctx := context.Background()

	mock.ExpectQuery("SELECT data FROM user_preferences").WithArgs("driver").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))
	prefs, err := repo.Get(ctx, "driver")
	if err != nil || prefs.LastByRoute == nil {
		t.Fatalf("unknown profile should yield empty prefs: %+v %v", prefs, err)
	}

	mock.ExpectQuery("SELECT data FROM user_preferences").WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"lastDriverName":"A","lastByRoute":{"R1":{"price":800,"wage":350}}}`)))
	prefs, err = repo.Get(ctx, "admin")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if prefs.LastDriverName != "A" || prefs.LastByRoute["R1"].Wage != 350 {
		t.Fatalf("unexpected prefs: %+v", prefs)
	}

	mock.ExpectExec("INSERT INTO user_preferences").
		WithArgs("admin", `{"lastDriverName":"A","lastByRoute":{"R1":{"price":800,"wage":350}}}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Save(ctx, "admin", prefs); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFuelRefillsCreateAndList(t *testing.T) {
	db, mock := newMock(t)
	repo := FuelRefillsRepository{DB: db, Dialect: intdb.MySQL}
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO fuel_refills").WithArgs("2024-02-10", 3000.0, "A").
		WillReturnResult(sqlmock.NewResult(5, 1))
	rec, err := repo.Create(ctx, billing.FuelRefill{Date: "2024-02-10", Amount: 3000, Notes: "A"})
	if err != nil || rec.ID != 5 {
		t.Fatalf("Create = %+v %v", rec, err)
	}

	mock.ExpectQuery("SELECT id, date, amount, notes FROM fuel_refills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "amount", "notes"}).
			AddRow(5, "2024-02-10T00:00:00Z", 3000.0, " A "))
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 || list[0].Date != "2024-02-10" || list[0].Notes != "A" {
		t.Fatalf("List = %+v %v", list, err)
	}
}

func TestFuelRefillsCreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := FuelRefillsRepository{DB: db, Dialect: intdb.Postgres}

	mock.ExpectQuery("INSERT INTO fuel_refills (.+) RETURNING id").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	_, err := repo.Create(context.Background(), billing.FuelRefill{Date: "2024-02-10", Amount: 100})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
