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

type courseRepository struct {
	q db.DBTX
}

func (r *courseRepository) selectCourses() squirrel.SelectBuilder {
	return psql.Select(
		"c.id", "c.name", "c.code", "c.description", "c.credits", "c.department_id",
		"c.created_at", "c.updated_at",
		"d.name", "d.description", "d.created_at", "d.updated_at",
	).From("courses c").LeftJoin("departments d ON d.id = c.department_id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var dept nullableDepartment
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Description, &c.Credits, &c.DepartmentID,
		&c.CreatedAt, &c.UpdatedAt,
		&dept.name, &dept.description, &dept.createdAt, &dept.updatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Department = dept.model(c.DepartmentID)
	return &c, nil
}

// nullableDepartment receives the LEFT JOINed department columns
type nullableDepartment struct {
	name        *string
	description *string
	createdAt   *time.Time
	updatedAt   *time.Time
}

func (n nullableDepartment) model(id *int64) *models.Department {
	if id == nil || n.name == nil {
		return nil
	}
	d := &models.Department{ID: *id, Name: *n.name}
	if n.description != nil {
		d.Description = *n.description
	}
	if n.createdAt != nil {
		d.CreatedAt = *n.createdAt
	}
	if n.updatedAt != nil {
		d.UpdatedAt = *n.updatedAt
	}
	return d
}

func (r *courseRepository) Create(ctx context.Context, c *models.Course) error {
	now := time.Now().UTC()
	row, err := queryRow(ctx, r.q, psql.Insert("courses").
		Columns("name", "code", "description", "credits", "department_id", "created_at", "updated_at").
		Values(c.Name, c.Code, c.Description, c.Credits, c.DepartmentID, now, now).
		Suffix("RETURNING id, created_at, updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

func (r *courseRepository) Update(ctx context.Context, c *models.Course) error {
	row, err := queryRow(ctx, r.q, psql.Update("courses").
		Set("name", c.Name).
		Set("code", c.Code).
		Set("description", c.Description).
		Set("credits", c.Credits).
		Set("department_id", c.DepartmentID).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at"))
	if err != nil {
		return err
	}
	return noRows(row.Scan(&c.UpdatedAt))
}

// Delete removes the course; enrollments and teaching assignments cascade
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	return affected(exec(ctx, r.q, psql.Delete("courses").Where(squirrel.Eq{"id": id})))
}

func (r *courseRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Course, error) {
	row, err := queryRow(ctx, r.q, r.selectCourses().Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	c, err := scanCourse(row)
	if err != nil {
		return nil, noRows(err)
	}
	return c, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"c.code": code})
}

func (r *courseRepository) List(ctx context.Context) ([]*models.Course, error) {
	return queryAll(ctx, r.q, r.selectCourses().OrderBy("c.id"), scanCourse)
}

func (r *courseRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return queryAll(ctx, r.q, r.selectCourses().Where(squirrel.Eq{"c.department_id": departmentID}).OrderBy("c.id"), scanCourse)
}

// ListByFaculty returns the courses a faculty member is assigned to teach
func (r *courseRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error) {
	return queryAll(ctx, r.q, r.selectCourses().
		Join("course_faculty cf ON cf.course_id = c.id").
		Where(squirrel.Eq{"cf.faculty_id": facultyID}).
		OrderBy("c.id"), scanCourse)
}

// Search matches keyword case-insensitively against name, code or description
func (r *courseRepository) Search(ctx context.Context, keyword string) ([]*models.Course, error) {
	return queryAll(ctx, r.q, r.selectCourses().
		Where(anyILike(keyword, "c.name", "c.code", "c.description")).
		OrderBy("c.id"), scanCourse)
}

func (r *courseRepository) AssignFaculty(ctx context.Context, courseID, facultyID int64) error {
	_, err := exec(ctx, r.q, psql.Insert("course_faculty").Columns("course_id", "faculty_id").Values(courseID, facultyID))
	return err
}

func (r *courseRepository) UnassignFaculty(ctx context.Context, courseID, facultyID int64) error {
	return affected(exec(ctx, r.q, psql.Delete("course_faculty").Where(squirrel.Eq{
		"course_id":  courseID,
		"faculty_id": facultyID,
	})))
}
