package dberrors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the service layer cares about.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"

	// class 22 covers values a column cannot hold (22001 too long, 22003 out of range)
	DataExceptionClass = "22"
)

// DataException reports whether err is a data exception and returns the column Postgres
// blamed, which may be empty.
func DataException(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, DataExceptionClass) {
		return pgErr.ColumnName, true
	}
	return "", false
}

// UniqueViolationConstraint returns the violated constraint when err is a unique violation.
func UniqueViolationConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// IsForeignKeyViolation reports whether err is a foreign key violation, i.e. a referenced
// row vanished between the existence check and the write.
func IsForeignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == ForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
