package repositories

import (
	"database/sql"

	intconfig "fleetbilling/internal/config"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

var errNoDB = domain.InternalError{Msg: "database not connected"}

// store resolves the connection and dialect for a repository, falling
// back to the shared connection.
type store struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (s store) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s store) dialect() intdb.Dialect {
	if s.Dialect != "" {
		return s.Dialect
	}
	return intconfig.Dialect
}

type scanner interface {
	Scan(dest ...any) error
}

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func nullInt(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}
