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

var departmentColumns = []string{"id", "name", "description", "created_at", "updated_at"}

type departmentRepository struct {
	q db.DBTX
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) Create(ctx context.Context, d *models.Department) error {
	now := time.Now().UTC()
	row, err := queryRow(ctx, r.q, psql.Insert("departments").
		Columns("name", "description", "created_at", "updated_at").
		Values(d.Name, d.Description, now, now).
		Suffix("RETURNING id, created_at, updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Update(ctx context.Context, d *models.Department) error {
	row, err := queryRow(ctx, r.q, psql.Update("departments").
		Set("name", d.Name).
		Set("description", d.Description).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING updated_at"))
	if err != nil {
		return err
	}
	return noRows(row.Scan(&d.UpdatedAt))
}

// Delete removes the department; its courses and faculty profiles cascade
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return affected(exec(ctx, r.q, psql.Delete("departments").Where(squirrel.Eq{"id": id})))
}

func (r *departmentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Department, error) {
	row, err := queryRow(ctx, r.q, psql.Select(departmentColumns...).From("departments").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	d, err := scanDepartment(row)
	if err != nil {
		return nil, noRows(err)
	}
	return d, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *departmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	return queryAll(ctx, r.q, psql.Select(departmentColumns...).From("departments").OrderBy("id"), scanDepartment)
}
