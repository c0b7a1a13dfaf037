// Package services holds the integrity-enforcing business logic. Every write resolves
// references, checks unique fields and persists in one transaction; see integrity.go.
package services

import (
	"github.com/yigit/unifms/internal/app/repositories"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

// Services groups every service built over one store
type Services struct {
	Auth         *AuthService
	Users        *UserService
	Roles        *RoleService
	Departments  *DepartmentService
	Courses      *CourseService
	Faculty      *FacultyService
	Publications *PublicationService
	Enrollments  *EnrollmentService
}

// New wires the services
func New(store repositories.Store, hasher *pkgauth.PasswordHasher, tokens TokenIssuer) *Services {
	users := NewUserService(store, hasher)
	return &Services{
		Auth:         NewAuthService(store, users, hasher, tokens),
		Users:        users,
		Roles:        NewRoleService(store),
		Departments:  NewDepartmentService(store),
		Courses:      NewCourseService(store),
		Faculty:      NewFacultyService(store),
		Publications: NewPublicationService(store),
		Enrollments:  NewEnrollmentService(store),
	}
}
