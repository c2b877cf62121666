package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Postgres error classes we classify on instead of sniffing message text.
const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
	pgInvalidCatalog  = "3D000"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	if code, ok := pgCode(err); ok {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) {
			d.PGCode = code
			d.PGConstraint = pgxErr.ConstraintName
			d.PGTable = pgxErr.TableName
			d.PGColumn = pgxErr.ColumnName
			d.PGDetail = pgxErr.Detail
			d.PGMessage = pgxErr.Message
			return d
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			d.PGCode = code
			d.PGConstraint = pqErr.Constraint
			d.PGTable = pqErr.Table
			d.PGColumn = pqErr.Column
			d.PGDetail = pqErr.Detail
			d.PGMessage = pqErr.Message
		}
	}

	return d
}

// IsUniqueViolation reports whether err is a Postgres unique constraint hit.
func IsUniqueViolation(err error) bool {
	code, ok := pgCode(err)
	return ok && code == pgUniqueViolation
}

// IsSchemaMissing reports whether err indicates the schema has not been
// migrated (missing table/column/database). This replaces message-substring
// detection with the driver's structured SQLSTATE codes.
func IsSchemaMissing(err error) bool {
	code, ok := pgCode(err)
	if !ok {
		return false
	}
	switch code {
	case pgUndefinedTable, pgUndefinedColumn, pgInvalidCatalog:
		return true
	}
	return false
}

func pgCode(err error) (string, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}
