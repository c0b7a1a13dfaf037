package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unifms/internal/db"
)

// psql builds statements with Postgres placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore implements Store on top of a pgx pool
type PostgresStore struct {
	pg   *db.PostgresDB
	q    db.DBTX
	inTx bool
}

// NewPostgresStore creates a store bound to the pool
func NewPostgresStore(pg *db.PostgresDB) *PostgresStore {
	return &PostgresStore{pg: pg, q: pg.Pool}
}

func (s *PostgresStore) Users() UserRepository               { return &userRepository{q: s.q} }
func (s *PostgresStore) Roles() RoleRepository               { return &roleRepository{q: s.q} }
func (s *PostgresStore) Departments() DepartmentRepository   { return &departmentRepository{q: s.q} }
func (s *PostgresStore) Courses() CourseRepository           { return &courseRepository{q: s.q} }
func (s *PostgresStore) Faculty() FacultyRepository          { return &facultyRepository{q: s.q} }
func (s *PostgresStore) Publications() PublicationRepository { return &publicationRepository{q: s.q} }
func (s *PostgresStore) Enrollments() EnrollmentRepository   { return &enrollmentRepository{q: s.q} }

// WithTx runs fn inside a read-committed transaction. Nested calls join the outer one.
func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{pg: s.pg, q: tx, inTx: true})
	})
}

// queryRow builds and runs a single-row query
func queryRow(ctx context.Context, q db.DBTX, b squirrel.Sqlizer) (pgx.Row, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return q.QueryRow(ctx, sql, args...), nil
}

// exec builds and runs a statement, returning the number of affected rows
func exec(ctx context.Context, q db.DBTX, b squirrel.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build statement: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// queryAll builds and runs a query and scans every row with scan
func queryAll[T any](ctx context.Context, q db.DBTX, b squirrel.Sqlizer, scan func(pgx.Row) (T, error)) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// count runs a COUNT(*) query
func count(ctx context.Context, q db.DBTX, b squirrel.SelectBuilder) (int64, error) {
	row, err := queryRow(ctx, q, b)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// noRows maps pgx.ErrNoRows to ErrNotFound
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// affected turns a zero row count into ErrNotFound
func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching keyword anywhere
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// anyILike matches when at least one column contains keyword
func anyILike(keyword string, columns ...string) squirrel.Or {
	pattern := containsPattern(keyword)
	or := make(squirrel.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, squirrel.ILike{c: pattern})
	}
	return or
}
