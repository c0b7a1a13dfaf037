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

var userColumns = []string{"u.id", "u.username", "u.email", "u.password", "u.created_at", "u.updated_at"}

type userRepository struct {
	q db.DBTX
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and links u.Roles, which must carry resolved role ids
func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	row, err := queryRow(ctx, r.q, psql.Insert("users").
		Columns("username", "email", "password", "created_at", "updated_at").
		Values(u.Username, u.Email, u.Password, now, now).
		Suffix("RETURNING id, created_at, updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return r.linkRoles(ctx, u.ID, u.Roles)
}

// Update writes username, email, password and replaces the role links
func (r *userRepository) Update(ctx context.Context, u *models.User) error {
	row, err := queryRow(ctx, r.q, psql.Update("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("password", u.Password).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return noRows(err)
	}

	if _, err := exec(ctx, r.q, psql.Delete("user_roles").Where(squirrel.Eq{"user_id": u.ID})); err != nil {
		return fmt.Errorf("error clearing user roles: %w", err)
	}
	return r.linkRoles(ctx, u.ID, u.Roles)
}

func (r *userRepository) linkRoles(ctx context.Context, userID int64, roles []models.Role) error {
	if len(roles) == 0 {
		return nil
	}
	ins := psql.Insert("user_roles").Columns("user_id", "role_id")
	for _, role := range roles {
		ins = ins.Values(userID, role.ID)
	}
	if _, err := exec(ctx, r.q, ins); err != nil {
		return fmt.Errorf("error linking user roles: %w", err)
	}
	return nil
}

// Delete removes the user. Faculty profile and enrollments go with it through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return affected(exec(ctx, r.q, psql.Delete("users").Where(squirrel.Eq{"id": id})))
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	row, err := queryRow(ctx, r.q, psql.Select(userColumns...).From("users u").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		return nil, noRows(err)
	}
	if err := r.loadRoles(ctx, []*models.User{u}); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.username": username})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.email": email})
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, psql.Select(userColumns...).From("users u").OrderBy("u.id"))
}

// ListByRole returns users holding role
func (r *userRepository) ListByRole(ctx context.Context, role models.RoleName) ([]*models.User, error) {
	return r.list(ctx, psql.Select(userColumns...).
		From("users u").
		Join("user_roles ur ON ur.user_id = u.id").
		Join("roles r ON r.id = ur.role_id").
		Where(squirrel.Eq{"r.name": string(role)}).
		OrderBy("u.id"))
}

func (r *userRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.User, error) {
	users, err := queryAll(ctx, r.q, b, scanUser)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	if err := r.loadRoles(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// loadRoles fills Roles for every user with one query
func (r *userRepository) loadRoles(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	byID := make(map[int64]*models.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		u.Roles = []models.Role{}
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	type link struct {
		userID int64
		role   models.Role
	}
	links, err := queryAll(ctx, r.q, psql.Select("ur.user_id", "r.id", "r.name").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where(squirrel.Eq{"ur.user_id": ids}).
		OrderBy("r.id"),
		func(row pgx.Row) (link, error) {
			var l link
			err := row.Scan(&l.userID, &l.role.ID, &l.role.Name)
			return l, err
		})
	if err != nil {
		return fmt.Errorf("error loading user roles: %w", err)
	}
	for _, l := range links {
		if u, ok := byID[l.userID]; ok {
			u.Roles = append(u.Roles, l.role)
		}
	}
	return nil
}
