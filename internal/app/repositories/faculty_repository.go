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

type facultyRepository struct {
	q db.DBTX
}

func (r *facultyRepository) selectProfiles() squirrel.SelectBuilder {
	return psql.Select(
		"f.id", "f.user_id", "f.first_name", "f.last_name", "f.bio", "f.profile_picture_url",
		"f.department_id", "f.phone", "f.office_location", "f.hire_date", "f.created_at", "f.updated_at",
		"u.username", "u.email",
		"d.name", "d.description", "d.created_at", "d.updated_at",
	).
		From("faculty_profiles f").
		Join("users u ON u.id = f.user_id").
		LeftJoin("departments d ON d.id = f.department_id")
}

func scanProfile(row pgx.Row) (*models.FacultyProfile, error) {
	var f models.FacultyProfile
	var hireDate *time.Time
	var user models.User
	var dept nullableDepartment
	err := row.Scan(
		&f.ID, &f.UserID, &f.FirstName, &f.LastName, &f.Bio, &f.ProfilePictureURL,
		&f.DepartmentID, &f.Phone, &f.OfficeLocation, &hireDate, &f.CreatedAt, &f.UpdatedAt,
		&user.Username, &user.Email,
		&dept.name, &dept.description, &dept.createdAt, &dept.updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if hireDate != nil {
		d := models.NewDate(*hireDate)
		f.HireDate = &d
	}
	user.ID = f.UserID
	f.User = &user
	f.Department = dept.model(f.DepartmentID)
	return &f, nil
}

func hireDateValue(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	return &d.Time
}

func (r *facultyRepository) Create(ctx context.Context, f *models.FacultyProfile) error {
	now := time.Now().UTC()
	row, err := queryRow(ctx, r.q, psql.Insert("faculty_profiles").
		Columns("user_id", "first_name", "last_name", "bio", "profile_picture_url", "department_id",
			"phone", "office_location", "hire_date", "created_at", "updated_at").
		Values(f.UserID, f.FirstName, f.LastName, f.Bio, f.ProfilePictureURL, f.DepartmentID,
			f.Phone, f.OfficeLocation, hireDateValue(f.HireDate), now, now).
		Suffix("RETURNING id, created_at, updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return fmt.Errorf("error creating faculty profile: %w", err)
	}
	return nil
}

func (r *facultyRepository) Update(ctx context.Context, f *models.FacultyProfile) error {
	row, err := queryRow(ctx, r.q, psql.Update("faculty_profiles").
		Set("user_id", f.UserID).
		Set("first_name", f.FirstName).
		Set("last_name", f.LastName).
		Set("bio", f.Bio).
		Set("profile_picture_url", f.ProfilePictureURL).
		Set("department_id", f.DepartmentID).
		Set("phone", f.Phone).
		Set("office_location", f.OfficeLocation).
		Set("hire_date", hireDateValue(f.HireDate)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING updated_at"))
	if err != nil {
		return err
	}
	return noRows(row.Scan(&f.UpdatedAt))
}

// Delete removes the profile; publications and teaching assignments cascade
func (r *facultyRepository) Delete(ctx context.Context, id int64) error {
	return affected(exec(ctx, r.q, psql.Delete("faculty_profiles").Where(squirrel.Eq{"id": id})))
}

func (r *facultyRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.FacultyProfile, error) {
	row, err := queryRow(ctx, r.q, r.selectProfiles().Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	f, err := scanProfile(row)
	if err != nil {
		return nil, noRows(err)
	}
	return f, nil
}

func (r *facultyRepository) GetByID(ctx context.Context, id int64) (*models.FacultyProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"f.id": id})
}

func (r *facultyRepository) GetByUserID(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"f.user_id": userID})
}

func (r *facultyRepository) List(ctx context.Context) ([]*models.FacultyProfile, error) {
	return queryAll(ctx, r.q, r.selectProfiles().OrderBy("f.id"), scanProfile)
}

func (r *facultyRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.FacultyProfile, error) {
	return queryAll(ctx, r.q, r.selectProfiles().Where(squirrel.Eq{"f.department_id": departmentID}).OrderBy("f.id"), scanProfile)
}

// Search matches keyword case-insensitively against first name, last name or bio
func (r *facultyRepository) Search(ctx context.Context, keyword string) ([]*models.FacultyProfile, error) {
	return queryAll(ctx, r.q, r.selectProfiles().
		Where(anyILike(keyword, "f.first_name", "f.last_name", "f.bio")).
		OrderBy("f.id"), scanProfile)
}
