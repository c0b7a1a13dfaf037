package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func TestCreateCourse_UnknownDepartmentWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Courses.Create(ctx, CourseInput{Name: "Ghost", Code: "GH100", Credits: 3, DepartmentID: ptr(int64(404))})
	require.ErrorIs(t, err, apperrors.ErrReferenceNotFound)
	kind, _ := apperrors.Detail(err, "kind")
	assert.Equal(t, "Department", kind)

	courses, err := f.svc.Courses.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCreateCourse_DuplicateCode(t *testing.T) {
	f := newFixture(t)
	f.course(t, "CS101", nil)

	_, err := f.svc.Courses.Create(context.Background(), CourseInput{Name: "Again", Code: "CS101", Credits: 2})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	field, _ := apperrors.Detail(err, "field")
	assert.Equal(t, "code", field)
}

func TestCreateCourse_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   CourseInput
	}{
		{"zero credits", CourseInput{Name: "Zero", Code: "Z0", Credits: 0}},
		{"huge credits", CourseInput{Name: "Huge", Code: "H1", Credits: 1 << 30}},
		{"credits above the cap", CourseInput{Name: "Heavy", Code: "H2", Credits: MaxCredits + 1}},
		{"long name", CourseInput{Name: strings.Repeat("n", 256), Code: "L1", Credits: 3}},
		{"long code", CourseInput{Name: "Long", Code: strings.Repeat("C", 21), Credits: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Courses.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	_, err := f.svc.Courses.Create(context.Background(), CourseInput{Name: "Capped", Code: "C100", Credits: MaxCredits})
	assert.NoError(t, err)
}

func TestCourse_CreateAttachesDepartment(t *testing.T) {
	f := newFixture(t)
	d := f.department(t, "Computer Science")

	c := f.course(t, "CS201", &d.ID)
	require.NotNil(t, c.Department)
	assert.Equal(t, "Computer Science", c.Department.Name)
}

func TestUpdateCourse_KeepsOwnCodeAndChecksDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.course(t, "CS301", nil)

	updated, err := f.svc.Courses.Update(ctx, c.ID, CourseInput{Name: "Algorithms", Code: "CS301", Credits: 4})
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", updated.Name)
	assert.Equal(t, 4, updated.Credits)

	_, err = f.svc.Courses.Update(ctx, c.ID, CourseInput{Name: "Algorithms", Code: "CS301", Credits: 4, DepartmentID: ptr(int64(9))})
	assert.ErrorIs(t, err, apperrors.ErrReferenceNotFound)
}

func TestSearchCourses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []CourseInput{
		{Name: "Marine BIOLOGY", Code: "MB1", Credits: 3},
		{Name: "Chemistry", Code: "CH1", Credits: 3, Description: "biochemical pathways"},
		{Name: "History", Code: "BIO-H", Credits: 3},
		{Name: "Physics", Code: "PH1", Credits: 3},
	} {
		_, err := f.svc.Courses.Create(ctx, in)
		require.NoError(t, err)
	}

	found, err := f.svc.Courses.Search(ctx, "bio")
	require.NoError(t, err)
	codes := make([]string, 0, len(found))
	for _, c := range found {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"MB1", "CH1", "BIO-H"}, codes)

	_, err = f.svc.Courses.Search(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCourseInstructors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.course(t, "CS400", nil)
	p := f.faculty(t, f.user(t, "knuth", "FACULTY"), "Donald", "Knuth", "", nil)

	require.NoError(t, f.svc.Courses.AssignInstructor(ctx, c.ID, p.ID))
	assert.ErrorIs(t, f.svc.Courses.AssignInstructor(ctx, c.ID, p.ID), apperrors.ErrDuplicateKey)
	assert.ErrorIs(t, f.svc.Courses.AssignInstructor(ctx, c.ID, 999), apperrors.ErrReferenceNotFound)
	assert.ErrorIs(t, f.svc.Courses.AssignInstructor(ctx, 999, p.ID), apperrors.ErrNotFound)

	taught, err := f.svc.Courses.ListByFaculty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, c.ID, taught[0].ID)

	require.NoError(t, f.svc.Courses.UnassignInstructor(ctx, c.ID, p.ID))
	assert.ErrorIs(t, f.svc.Courses.UnassignInstructor(ctx, c.ID, p.ID), apperrors.ErrNotFound)
}

func TestListCoursesByDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, "Music")
	f.course(t, "MU1", &d.ID)
	f.course(t, "XX1", nil)

	courses, err := f.svc.Courses.ListByDepartment(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "MU1", courses[0].Code)

	_, err = f.svc.Courses.ListByDepartment(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
