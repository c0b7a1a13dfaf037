package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/db"
)

var enrollmentColumns = []string{"student_id", "course_id", "semester", "year", "enrollment_date", "grade"}

type enrollmentRepository struct {
	q db.DBTX
}

func scanEnrollment(row pgx.Row) (*models.StudentEnrollment, error) {
	var e models.StudentEnrollment
	if err := row.Scan(&e.StudentID, &e.CourseID, &e.Semester, &e.Year, &e.EnrollmentDate, &e.Grade); err != nil {
		return nil, err
	}
	return &e, nil
}

func keyEq(key models.EnrollmentKey) squirrel.Eq {
	return squirrel.Eq{
		"student_id": key.StudentID,
		"course_id":  key.CourseID,
		"semester":   key.Semester,
		"year":       key.Year,
	}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *models.StudentEnrollment) error {
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now().UTC()
	}
	_, err := exec(ctx, r.q, psql.Insert("student_enrollments").
		Columns(enrollmentColumns...).
		Values(e.StudentID, e.CourseID, e.Semester, e.Year, e.EnrollmentDate, e.Grade))
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, key models.EnrollmentKey) error {
	return affected(exec(ctx, r.q, psql.Delete("student_enrollments").Where(keyEq(key))))
}

func (r *enrollmentRepository) Get(ctx context.Context, key models.EnrollmentKey) (*models.StudentEnrollment, error) {
	row, err := queryRow(ctx, r.q, psql.Select(enrollmentColumns...).From("student_enrollments").Where(keyEq(key)))
	if err != nil {
		return nil, err
	}
	e, err := scanEnrollment(row)
	if err != nil {
		return nil, noRows(err)
	}
	return e, nil
}

// UpdateGrade sets or clears the grade of one enrollment
func (r *enrollmentRepository) UpdateGrade(ctx context.Context, key models.EnrollmentKey, grade *string) error {
	return affected(exec(ctx, r.q, psql.Update("student_enrollments").Set("grade", grade).Where(keyEq(key))))
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentEnrollment, error) {
	return queryAll(ctx, r.q, psql.Select(enrollmentColumns...).
		From("student_enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("year", "semester", "course_id"), scanEnrollment)
}

func (r *enrollmentRepository) ListByCourse(ctx context.Context, courseID int64, filter EnrollmentFilter) ([]*models.StudentEnrollment, error) {
	where := squirrel.Eq{"course_id": courseID}
	if filter.Semester != "" {
		where["semester"] = filter.Semester
	}
	if filter.Year != 0 {
		where["year"] = filter.Year
	}
	return queryAll(ctx, r.q, psql.Select(enrollmentColumns...).
		From("student_enrollments").
		Where(where).
		OrderBy("year", "semester", "student_id"), scanEnrollment)
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	return count(ctx, r.q, psql.Select("COUNT(*)").From("student_enrollments").Where(squirrel.Eq{"course_id": courseID}))
}

func (r *enrollmentRepository) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	return count(ctx, r.q, psql.Select("COUNT(*)").From("student_enrollments").Where(squirrel.Eq{"student_id": studentID}))
}
