package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func TestEnroll_KeyIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "stu")
	course := f.course(t, "CS110", nil)

	key := models.EnrollmentKey{StudentID: student.ID, CourseID: course.ID, Semester: "FALL", Year: 2024}
	_, err := f.svc.Enrollments.Enroll(ctx, key, nil)
	require.NoError(t, err)

	_, err = f.svc.Enrollments.Enroll(ctx, key, nil)
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	other := key
	other.Semester = "SPRING"
	_, err = f.svc.Enrollments.Enroll(ctx, other, nil)
	require.NoError(t, err)

	nextYear := key
	nextYear.Year = 2025
	_, err = f.svc.Enrollments.Enroll(ctx, nextYear, nil)
	require.NoError(t, err)

	n, err := f.svc.Enrollments.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestEnroll_References(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "stu")
	course := f.course(t, "CS120", nil)

	_, err := f.svc.Enrollments.Enroll(ctx, models.EnrollmentKey{StudentID: 999, CourseID: course.ID, Semester: "FALL", Year: 2024}, nil)
	assert.ErrorIs(t, err, apperrors.ErrReferenceNotFound)

	_, err = f.svc.Enrollments.Enroll(ctx, models.EnrollmentKey{StudentID: student.ID, CourseID: 999, Semester: "FALL", Year: 2024}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnrollment_GradeAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")
	course := f.course(t, "CS130", nil)

	fall := models.EnrollmentKey{StudentID: a.ID, CourseID: course.ID, Semester: "fall", Year: 2024}
	_, err := f.svc.Enrollments.Enroll(ctx, fall, nil)
	require.NoError(t, err)
	_, err = f.svc.Enrollments.Enroll(ctx, models.EnrollmentKey{StudentID: b.ID, CourseID: course.ID, Semester: "SPRING", Year: 2025}, nil)
	require.NoError(t, err)

	graded, err := f.svc.Enrollments.UpdateGrade(ctx, fall, ptr("A-"))
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, "A-", *graded.Grade)

	_, err = f.svc.Enrollments.UpdateGrade(ctx, fall, ptr("TOOLONG"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	onlyFall, err := f.svc.Enrollments.ListByCourse(ctx, course.ID, repositories.EnrollmentFilter{Semester: "Fall", Year: 2024})
	require.NoError(t, err)
	require.Len(t, onlyFall, 1)
	assert.Equal(t, a.ID, onlyFall[0].StudentID)

	mine, err := f.svc.Enrollments.ListByStudent(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "SPRING", mine[0].Semester)

	require.NoError(t, f.svc.Enrollments.Unenroll(ctx, fall))
	assert.ErrorIs(t, f.svc.Enrollments.Unenroll(ctx, fall), apperrors.ErrNotFound)
}

func TestDeleteCourse_CascadesToEnrollments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "stu")
	course := f.course(t, "CS140", nil)
	key := models.EnrollmentKey{StudentID: student.ID, CourseID: course.ID, Semester: "FALL", Year: 2024}
	_, err := f.svc.Enrollments.Enroll(ctx, key, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Courses.Delete(ctx, course.ID))

	mine, err := f.svc.Enrollments.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
