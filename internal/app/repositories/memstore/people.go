package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
)

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func byID[T any](rows map[int64]T, keep func(T) bool, id func(T) int64) []T {
	out := []T{}
	for _, row := range rows {
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

func containsFold(keyword string, fields ...string) bool {
	keyword = strings.ToLower(keyword)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}

type userRepo struct{ v *view }

func copyUser(u models.User) *models.User {
	u.Roles = slices.Clone(u.Roles)
	if u.Roles == nil {
		u.Roles = []models.Role{}
	}
	return &u
}

func checkUserUnique(st *state, row models.User) error {
	for _, other := range st.users {
		if other.ID != row.ID && other.Username == row.Username {
			return uniqueViolation(repositories.ConstraintUserUsername)
		}
	}
	for _, other := range st.users {
		if other.ID != row.ID && other.Email == row.Email {
			return uniqueViolation(repositories.ConstraintUserEmail)
		}
	}
	return nil
}

func (r userRepo) Create(_ context.Context, u *models.User) error {
	row := *copyUser(*u)
	row.ID = r.v.s.nextID("users")
	row.CreatedAt = r.v.s.now()
	row.UpdatedAt = row.CreatedAt
	err := r.v.write(func(st *state) error {
		if err := checkUserUnique(st, row); err != nil {
			return err
		}
		st.users[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	u.ID, u.CreatedAt, u.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r userRepo) Update(_ context.Context, u *models.User) error {
	row := *copyUser(*u)
	row.UpdatedAt = r.v.s.now()
	err := r.v.write(func(st *state) error {
		existing, ok := st.users[row.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if err := checkUserUnique(st, row); err != nil {
			return err
		}
		row.CreatedAt = existing.CreatedAt
		st.users[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	u.UpdatedAt = row.UpdatedAt
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return repositories.ErrNotFound
		}
		st.deleteUser(id)
		return nil
	})
}

func (r userRepo) find(match func(models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				found = copyUser(u)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r userRepo) list(keep func(models.User) bool) ([]*models.User, error) {
	var out []*models.User
	err := r.v.read(func(st *state) error {
		rows := byID(st.users, keep, func(u models.User) int64 { return u.ID })
		out = make([]*models.User, 0, len(rows))
		for _, u := range rows {
			out = append(out, copyUser(u))
		}
		return nil
	})
	return out, err
}

func (r userRepo) List(_ context.Context) ([]*models.User, error) {
	return r.list(nil)
}

func (r userRepo) ListByRole(_ context.Context, role models.RoleName) ([]*models.User, error) {
	return r.list(func(u models.User) bool { return u.HasRole(role) })
}

type roleRepo struct{ v *view }

func (r roleRepo) List(_ context.Context) ([]models.Role, error) {
	var out []models.Role
	err := r.v.read(func(st *state) error {
		out = byID(st.roles, nil, func(role models.Role) int64 { return role.ID })
		return nil
	})
	return out, err
}

func (r roleRepo) GetByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	var found *models.Role
	err := r.v.read(func(st *state) error {
		for _, role := range st.roles {
			if role.Name == name {
				found = &role
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r roleRepo) Create(_ context.Context, role *models.Role) error {
	row := models.Role{ID: r.v.s.nextID("roles"), Name: role.Name}
	err := r.v.write(func(st *state) error {
		for _, other := range st.roles {
			if other.Name == row.Name {
				return uniqueViolation(repositories.ConstraintRoleName)
			}
		}
		st.roles[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	role.ID = row.ID
	return nil
}

type facultyRepo struct{ v *view }

func storedProfile(f *models.FacultyProfile) models.FacultyProfile {
	row := *f
	row.User = nil
	row.Department = nil
	row.DepartmentID = clonePtr(f.DepartmentID)
	row.HireDate = clonePtr(f.HireDate)
	return row
}

// joined attaches the owning user and the department the way the SQL join does
func (st *state) joinedProfile(row models.FacultyProfile) *models.FacultyProfile {
	f := row
	f.DepartmentID = clonePtr(row.DepartmentID)
	f.HireDate = clonePtr(row.HireDate)
	if u, ok := st.users[row.UserID]; ok {
		f.User = &models.User{ID: u.ID, Username: u.Username, Email: u.Email}
	}
	f.Department = st.department(row.DepartmentID)
	return &f
}

func checkProfile(st *state, row models.FacultyProfile) error {
	if _, ok := st.users[row.UserID]; !ok {
		return foreignKeyViolation(repositories.ConstraintFacultyUserFK)
	}
	if !st.departmentExists(row.DepartmentID) {
		return foreignKeyViolation(repositories.ConstraintFacultyDepartment)
	}
	for _, other := range st.faculty {
		if other.ID != row.ID && other.UserID == row.UserID {
			return uniqueViolation(repositories.ConstraintFacultyUser)
		}
	}
	return nil
}

func (r facultyRepo) Create(_ context.Context, f *models.FacultyProfile) error {
	row := storedProfile(f)
	row.ID = r.v.s.nextID("faculty_profiles")
	row.CreatedAt = r.v.s.now()
	row.UpdatedAt = row.CreatedAt
	err := r.v.write(func(st *state) error {
		if err := checkProfile(st, row); err != nil {
			return err
		}
		st.faculty[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	f.ID, f.CreatedAt, f.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r facultyRepo) Update(_ context.Context, f *models.FacultyProfile) error {
	row := storedProfile(f)
	row.UpdatedAt = r.v.s.now()
	err := r.v.write(func(st *state) error {
		existing, ok := st.faculty[row.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if err := checkProfile(st, row); err != nil {
			return err
		}
		row.CreatedAt = existing.CreatedAt
		st.faculty[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	f.UpdatedAt = row.UpdatedAt
	return nil
}

func (r facultyRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.faculty[id]; !ok {
			return repositories.ErrNotFound
		}
		st.deleteFaculty(id)
		return nil
	})
}

func (r facultyRepo) find(match func(models.FacultyProfile) bool) (*models.FacultyProfile, error) {
	var found *models.FacultyProfile
	err := r.v.read(func(st *state) error {
		for _, f := range st.faculty {
			if match(f) {
				found = st.joinedProfile(f)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r facultyRepo) GetByID(_ context.Context, id int64) (*models.FacultyProfile, error) {
	return r.find(func(f models.FacultyProfile) bool { return f.ID == id })
}

func (r facultyRepo) GetByUserID(_ context.Context, userID int64) (*models.FacultyProfile, error) {
	return r.find(func(f models.FacultyProfile) bool { return f.UserID == userID })
}

func (r facultyRepo) list(keep func(models.FacultyProfile) bool) ([]*models.FacultyProfile, error) {
	var out []*models.FacultyProfile
	err := r.v.read(func(st *state) error {
		rows := byID(st.faculty, keep, func(f models.FacultyProfile) int64 { return f.ID })
		out = make([]*models.FacultyProfile, 0, len(rows))
		for _, f := range rows {
			out = append(out, st.joinedProfile(f))
		}
		return nil
	})
	return out, err
}

func (r facultyRepo) List(_ context.Context) ([]*models.FacultyProfile, error) {
	return r.list(nil)
}

func (r facultyRepo) ListByDepartment(_ context.Context, departmentID int64) ([]*models.FacultyProfile, error) {
	return r.list(func(f models.FacultyProfile) bool {
		return f.DepartmentID != nil && *f.DepartmentID == departmentID
	})
}

func (r facultyRepo) Search(_ context.Context, keyword string) ([]*models.FacultyProfile, error) {
	return r.list(func(f models.FacultyProfile) bool {
		return containsFold(keyword, f.FirstName, f.LastName, f.Bio)
	})
}
