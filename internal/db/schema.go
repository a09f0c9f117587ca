package db

import (
	"context"
	"database/sql"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (d Dialect) schemaExpr() string {
	if d == Postgres {
		return "current_schema()"
	}
	return "DATABASE()"
}

// HasTable reports whether table exists in the current schema. Lookup
// errors read as absent; callers fall back to empty results.
func (d Dialect) HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, d.Rebind(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = `+d.schemaExpr()+`
		  AND table_name = ?
		LIMIT 1
	`), table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
