package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories/memstore"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store *memstore.Store
	jwt   *pkgauth.JWTService
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.NewWithRoles()
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "services-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unifms-test",
	})
	return &fixture{
		store: store,
		jwt:   jwt,
		svc:   New(store, pkgauth.NewPasswordHasher(bcrypt.MinCost), jwt),
	}
}

func (f *fixture) user(t *testing.T, username string, roles ...string) *models.User {
	t.Helper()
	u, err := f.svc.Users.Create(context.Background(), UserInput{
		Username: username,
		Email:    username + "@university.edu",
		Password: "secret123",
		Roles:    roles,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) department(t *testing.T, name string) *models.Department {
	t.Helper()
	d, err := f.svc.Departments.Create(context.Background(), DepartmentInput{Name: name})
	require.NoError(t, err)
	return d
}

func (f *fixture) course(t *testing.T, code string, departmentID *int64) *models.Course {
	t.Helper()
	c, err := f.svc.Courses.Create(context.Background(), CourseInput{
		Name:         "Course " + code,
		Code:         code,
		Credits:      3,
		DepartmentID: departmentID,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) faculty(t *testing.T, user *models.User, first, last, bio string, departmentID *int64) *models.FacultyProfile {
	t.Helper()
	p, err := f.svc.Faculty.Create(context.Background(), FacultyInput{
		UserID:       user.ID,
		FirstName:    first,
		LastName:     last,
		Bio:          bio,
		DepartmentID: departmentID,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
