package repositories

import (
	"context"
	"errors"

	"github.com/yigit/unifms/internal/app/models"
)

// ErrNotFound is returned by every repository lookup that matches no row
var ErrNotFound = errors.New("record not found")

// UserRepository persists users and their role links
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.RoleName) ([]*models.User, error)
}

// RoleRepository reads role reference data
type RoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
}

// DepartmentRepository persists departments. Delete cascades to courses and faculty profiles.
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
}

// CourseRepository persists courses and teaching assignments. Delete cascades to enrollments.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error)
	Search(ctx context.Context, keyword string) ([]*models.Course, error)
	AssignFaculty(ctx context.Context, courseID, facultyID int64) error
	UnassignFaculty(ctx context.Context, courseID, facultyID int64) error
}

// FacultyRepository persists faculty profiles. Delete cascades to publications.
type FacultyRepository interface {
	Create(ctx context.Context, profile *models.FacultyProfile) error
	Update(ctx context.Context, profile *models.FacultyProfile) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.FacultyProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.FacultyProfile, error)
	List(ctx context.Context) ([]*models.FacultyProfile, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]*models.FacultyProfile, error)
	Search(ctx context.Context, keyword string) ([]*models.FacultyProfile, error)
}

// PublicationRepository persists publications
type PublicationRepository interface {
	Create(ctx context.Context, publication *models.Publication) error
	Update(ctx context.Context, publication *models.Publication) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	List(ctx context.Context) ([]*models.Publication, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Publication, error)
	CountByFaculty(ctx context.Context, facultyID int64) (int64, error)
	Search(ctx context.Context, keyword string) ([]*models.Publication, error)
}

// EnrollmentFilter narrows course enrollment listings. Zero values match everything.
type EnrollmentFilter struct {
	Semester string
	Year     int
}

// EnrollmentRepository persists enrollments keyed by models.EnrollmentKey
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.StudentEnrollment) error
	Delete(ctx context.Context, key models.EnrollmentKey) error
	Get(ctx context.Context, key models.EnrollmentKey) (*models.StudentEnrollment, error)
	UpdateGrade(ctx context.Context, key models.EnrollmentKey, grade *string) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentEnrollment, error)
	ListByCourse(ctx context.Context, courseID int64, filter EnrollmentFilter) ([]*models.StudentEnrollment, error)
	CountByCourse(ctx context.Context, courseID int64) (int64, error)
	CountByStudent(ctx context.Context, studentID int64) (int64, error)
}

// Store groups the repositories over one connection scope. Repositories returned by a
// Store passed to WithTx callbacks share that transaction.
type Store interface {
	Users() UserRepository
	Roles() RoleRepository
	Departments() DepartmentRepository
	Courses() CourseRepository
	Faculty() FacultyRepository
	Publications() PublicationRepository
	Enrollments() EnrollmentRepository

	// WithTx runs fn in a single atomic transaction. Nothing fn writes is visible to
	// other transactions unless fn returns nil and the commit succeeds.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
