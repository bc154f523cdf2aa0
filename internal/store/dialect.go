package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
)

// dialect captures the SQL differences between the supported backends.
type dialect struct {
	// driver is the database/sql driver name.
	driver string

	// placeholder is the bind variable style: $1 for Postgres, ? otherwise.
	placeholder sq.PlaceholderFormat

	// returningID is true when INSERT ... RETURNING id is used instead of
	// sql.Result.LastInsertId. pgx does not implement LastInsertId.
	returningID bool
}

var dialects = map[string]dialect{
	DriverPostgres: {driver: DriverPostgres, placeholder: sq.Dollar, returningID: true},
	DriverSQLite:   {driver: DriverSQLite, placeholder: sq.Question},
	DriverMySQL:    {driver: DriverMySQL, placeholder: sq.Question},
}

// builder returns a squirrel statement builder with the placeholder style
// of the dialect.
func (d dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// insertIgnore turns an INSERT into one that silently skips rows violating
// the unique key named by conflictColumn.
func (d dialect) insertIgnore(b sq.InsertBuilder, conflictColumn string) sq.InsertBuilder {
	if d.driver == DriverMySQL {
		return b.Options("IGNORE")
	}
	return b.Suffix("ON CONFLICT (" + conflictColumn + ") DO NOTHING")
}
