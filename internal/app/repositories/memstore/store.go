// Package memstore is an in-process implementation of repositories.Store. It backs
// the memory database driver and the service and controller tests.
//
// Transactions are optimistic: a transaction works on a private snapshot and records
// every successful write. Commit replays the writes against the live state under a
// lock, so a conflicting row committed in the meantime fails the commit with the same
// *pgconn.PgError a Postgres unique or foreign key constraint would raise.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/dberrors"
)

type assignment struct {
	courseID  int64
	facultyID int64
}

type state struct {
	users        map[int64]models.User
	roles        map[int64]models.Role
	departments  map[int64]models.Department
	courses      map[int64]models.Course
	faculty      map[int64]models.FacultyProfile
	publications map[int64]models.Publication
	assignments  map[assignment]struct{}
	enrollments  map[models.EnrollmentKey]models.StudentEnrollment
}

func newState() *state {
	return &state{
		users:        map[int64]models.User{},
		roles:        map[int64]models.Role{},
		departments:  map[int64]models.Department{},
		courses:      map[int64]models.Course{},
		faculty:      map[int64]models.FacultyProfile{},
		publications: map[int64]models.Publication{},
		assignments:  map[assignment]struct{}{},
		enrollments:  map[models.EnrollmentKey]models.StudentEnrollment{},
	}
}

// clone copies the row maps. Stored rows are values and are replaced, never mutated.
func (st *state) clone() *state {
	return &state{
		users:        maps.Clone(st.users),
		roles:        maps.Clone(st.roles),
		departments:  maps.Clone(st.departments),
		courses:      maps.Clone(st.courses),
		faculty:      maps.Clone(st.faculty),
		publications: maps.Clone(st.publications),
		assignments:  maps.Clone(st.assignments),
		enrollments:  maps.Clone(st.enrollments),
	}
}

type op func(st *state) error

// Store is a goroutine-safe in-memory repositories.Store
type Store struct {
	mu   sync.RWMutex
	live *state

	seqMu sync.Mutex
	seq   map[string]int64

	now  func() time.Time
	root *view
}

var _ repositories.Store = (*Store)(nil)

// New returns an empty store
func New() *Store {
	s := &Store{
		live: newState(),
		seq:  map[string]int64{},
		now:  func() time.Time { return time.Now().UTC() },
	}
	s.root = &view{s: s}
	return s
}

// NewWithRoles returns a store seeded with every reference role
func NewWithRoles() *Store {
	s := New()
	for _, name := range models.AllRoles {
		role := models.Role{ID: s.nextID("roles"), Name: name}
		s.live.roles[role.ID] = role
	}
	return s
}

func (s *Store) Users() repositories.UserRepository               { return s.root.Users() }
func (s *Store) Roles() repositories.RoleRepository               { return s.root.Roles() }
func (s *Store) Departments() repositories.DepartmentRepository   { return s.root.Departments() }
func (s *Store) Courses() repositories.CourseRepository           { return s.root.Courses() }
func (s *Store) Faculty() repositories.FacultyRepository          { return s.root.Faculty() }
func (s *Store) Publications() repositories.PublicationRepository { return s.root.Publications() }
func (s *Store) Enrollments() repositories.EnrollmentRepository   { return s.root.Enrollments() }

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	return s.root.WithTx(ctx, fn)
}

// nextID hands out ids outside of any transaction so replayed inserts keep their id
func (s *Store) nextID(table string) int64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) commit(ops []op) error {
	if len(ops) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.live.clone()
	for _, apply := range ops {
		if err := apply(next); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}
	s.live = next
	return nil
}

// tx holds a snapshot and the writes applied to it
type tx struct {
	st  *state
	ops []op
}

// view is the Store surface either on the live state or inside a transaction
type view struct {
	s  *Store
	tx *tx
}

func (v *view) Users() repositories.UserRepository               { return userRepo{v} }
func (v *view) Roles() repositories.RoleRepository               { return roleRepo{v} }
func (v *view) Departments() repositories.DepartmentRepository   { return departmentRepo{v} }
func (v *view) Courses() repositories.CourseRepository           { return courseRepo{v} }
func (v *view) Faculty() repositories.FacultyRepository          { return facultyRepo{v} }
func (v *view) Publications() repositories.PublicationRepository { return publicationRepo{v} }
func (v *view) Enrollments() repositories.EnrollmentRepository   { return enrollmentRepo{v} }

func (v *view) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if v.tx != nil {
		return fn(ctx, v)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	v.s.mu.RLock()
	snapshot := v.s.live.clone()
	v.s.mu.RUnlock()

	t := &tx{st: snapshot}
	if err := fn(ctx, &view{s: v.s, tx: t}); err != nil {
		return err
	}
	return v.s.commit(t.ops)
}

func (v *view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx.st)
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return fn(v.s.live)
}

// write applies apply immediately. Every op checks its constraints before it mutates,
// so a failed op leaves the state untouched.
func (v *view) write(apply op) error {
	if v.tx != nil {
		if err := apply(v.tx.st); err != nil {
			return err
		}
		v.tx.ops = append(v.tx.ops, apply)
		return nil
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return apply(v.s.live)
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           dberrors.UniqueViolation,
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           dberrors.ForeignKeyViolation,
		Message:        fmt.Sprintf("insert or update violates foreign key constraint %q", constraint),
		ConstraintName: constraint,
	}
}

// Cascades mirror the ON DELETE CASCADE clauses of the SQL schema.

func (st *state) deleteUser(id int64) {
	delete(st.users, id)
	for fid, f := range st.faculty {
		if f.UserID == id {
			st.deleteFaculty(fid)
		}
	}
	for key := range st.enrollments {
		if key.StudentID == id {
			delete(st.enrollments, key)
		}
	}
}

func (st *state) deleteDepartment(id int64) {
	delete(st.departments, id)
	for cid, c := range st.courses {
		if c.DepartmentID != nil && *c.DepartmentID == id {
			st.deleteCourse(cid)
		}
	}
	for fid, f := range st.faculty {
		if f.DepartmentID != nil && *f.DepartmentID == id {
			st.deleteFaculty(fid)
		}
	}
}

func (st *state) deleteCourse(id int64) {
	delete(st.courses, id)
	for key := range st.enrollments {
		if key.CourseID == id {
			delete(st.enrollments, key)
		}
	}
	for a := range st.assignments {
		if a.courseID == id {
			delete(st.assignments, a)
		}
	}
}

func (st *state) deleteFaculty(id int64) {
	delete(st.faculty, id)
	for pid, p := range st.publications {
		if p.FacultyID == id {
			delete(st.publications, pid)
		}
	}
	for a := range st.assignments {
		if a.facultyID == id {
			delete(st.assignments, a)
		}
	}
}

func (st *state) departmentExists(id *int64) bool {
	if id == nil {
		return true
	}
	_, ok := st.departments[*id]
	return ok
}

func (st *state) department(id *int64) *models.Department {
	if id == nil {
		return nil
	}
	d, ok := st.departments[*id]
	if !ok {
		return nil
	}
	return &d
}
