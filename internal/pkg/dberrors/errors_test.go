package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolationConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "departments_name_key"}
	wrapped := fmt.Errorf("failed to commit transaction: %w", pgErr)

	name, ok := UniqueViolationConstraint(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "departments_name_key", name)

	_, ok = UniqueViolationConstraint(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "courses_department_id_fkey"}

	name, ok := IsForeignKeyViolation(pgErr)
	assert.True(t, ok)
	assert.Equal(t, "courses_department_id_fkey", name)

	_, ok = IsForeignKeyViolation(&pgconn.PgError{Code: UniqueViolation})
	assert.False(t, ok)
}

func TestDataException(t *testing.T) {
	tooLong := fmt.Errorf("failed to insert publication: %w", &pgconn.PgError{Code: "22001", ColumnName: "title"})
	column, ok := DataException(tooLong)
	assert.True(t, ok)
	assert.Equal(t, "title", column)

	_, ok = DataException(&pgconn.PgError{Code: "22003"})
	assert.True(t, ok)

	_, ok = DataException(&pgconn.PgError{Code: UniqueViolation})
	assert.False(t, ok)
	_, ok = DataException(errors.New("plain"))
	assert.False(t, ok)
}
