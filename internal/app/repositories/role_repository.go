package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/db"
)

type roleRepository struct {
	q db.DBTX
}

func scanRole(row pgx.Row) (models.Role, error) {
	var role models.Role
	err := row.Scan(&role.ID, &role.Name)
	return role, err
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	return queryAll(ctx, r.q, psql.Select("id", "name").From("roles").OrderBy("id"), scanRole)
}

func (r *roleRepository) GetByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	row, err := queryRow(ctx, r.q, psql.Select("id", "name").From("roles").Where(squirrel.Eq{"name": string(name)}))
	if err != nil {
		return nil, err
	}
	role, err := scanRole(row)
	if err != nil {
		return nil, noRows(err)
	}
	return &role, nil
}

// Create inserts a role; only seeding calls it
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	row, err := queryRow(ctx, r.q, psql.Insert("roles").Columns("name").Values(string(role.Name)).Suffix("RETURNING id"))
	if err != nil {
		return err
	}
	return row.Scan(&role.ID)
}
