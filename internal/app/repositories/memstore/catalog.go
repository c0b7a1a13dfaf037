package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
)

type departmentRepo struct{ v *view }

func checkDepartmentUnique(st *state, row models.Department) error {
	for _, other := range st.departments {
		if other.ID != row.ID && other.Name == row.Name {
			return uniqueViolation(repositories.ConstraintDepartmentName)
		}
	}
	return nil
}

func (r departmentRepo) Create(_ context.Context, d *models.Department) error {
	row := *d
	row.ID = r.v.s.nextID("departments")
	row.CreatedAt = r.v.s.now()
	row.UpdatedAt = row.CreatedAt
	err := r.v.write(func(st *state) error {
		if err := checkDepartmentUnique(st, row); err != nil {
			return err
		}
		st.departments[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	d.ID, d.CreatedAt, d.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r departmentRepo) Update(_ context.Context, d *models.Department) error {
	row := *d
	row.UpdatedAt = r.v.s.now()
	err := r.v.write(func(st *state) error {
		existing, ok := st.departments[row.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if err := checkDepartmentUnique(st, row); err != nil {
			return err
		}
		row.CreatedAt = existing.CreatedAt
		st.departments[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	d.UpdatedAt = row.UpdatedAt
	return nil
}

func (r departmentRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.departments[id]; !ok {
			return repositories.ErrNotFound
		}
		st.deleteDepartment(id)
		return nil
	})
}

func (r departmentRepo) find(match func(models.Department) bool) (*models.Department, error) {
	var found *models.Department
	err := r.v.read(func(st *state) error {
		for _, d := range st.departments {
			if match(d) {
				found = &d
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r departmentRepo) GetByID(_ context.Context, id int64) (*models.Department, error) {
	return r.find(func(d models.Department) bool { return d.ID == id })
}

func (r departmentRepo) GetByName(_ context.Context, name string) (*models.Department, error) {
	return r.find(func(d models.Department) bool { return d.Name == name })
}

func (r departmentRepo) List(_ context.Context) ([]*models.Department, error) {
	var out []*models.Department
	err := r.v.read(func(st *state) error {
		rows := byID(st.departments, nil, func(d models.Department) int64 { return d.ID })
		out = make([]*models.Department, 0, len(rows))
		for _, d := range rows {
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

type courseRepo struct{ v *view }

func storedCourse(c *models.Course) models.Course {
	row := *c
	row.Department = nil
	row.DepartmentID = clonePtr(c.DepartmentID)
	return row
}

func (st *state) joinedCourse(row models.Course) *models.Course {
	c := row
	c.DepartmentID = clonePtr(row.DepartmentID)
	c.Department = st.department(row.DepartmentID)
	return &c
}

func checkCourse(st *state, row models.Course) error {
	if !st.departmentExists(row.DepartmentID) {
		return foreignKeyViolation(repositories.ConstraintCourseDepartmentFK)
	}
	for _, other := range st.courses {
		if other.ID != row.ID && other.Code == row.Code {
			return uniqueViolation(repositories.ConstraintCourseCode)
		}
	}
	return nil
}

func (r courseRepo) Create(_ context.Context, c *models.Course) error {
	row := storedCourse(c)
	row.ID = r.v.s.nextID("courses")
	row.CreatedAt = r.v.s.now()
	row.UpdatedAt = row.CreatedAt
	err := r.v.write(func(st *state) error {
		if err := checkCourse(st, row); err != nil {
			return err
		}
		st.courses[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r courseRepo) Update(_ context.Context, c *models.Course) error {
	row := storedCourse(c)
	row.UpdatedAt = r.v.s.now()
	err := r.v.write(func(st *state) error {
		existing, ok := st.courses[row.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if err := checkCourse(st, row); err != nil {
			return err
		}
		row.CreatedAt = existing.CreatedAt
		st.courses[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (r courseRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.courses[id]; !ok {
			return repositories.ErrNotFound
		}
		st.deleteCourse(id)
		return nil
	})
}

func (r courseRepo) find(match func(models.Course) bool) (*models.Course, error) {
	var found *models.Course
	err := r.v.read(func(st *state) error {
		for _, c := range st.courses {
			if match(c) {
				found = st.joinedCourse(c)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r courseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	return r.find(func(c models.Course) bool { return c.ID == id })
}

func (r courseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	return r.find(func(c models.Course) bool { return c.Code == code })
}

func (r courseRepo) list(keep func(st *state, c models.Course) bool) ([]*models.Course, error) {
	var out []*models.Course
	err := r.v.read(func(st *state) error {
		rows := byID(st.courses, func(c models.Course) bool {
			return keep == nil || keep(st, c)
		}, func(c models.Course) int64 { return c.ID })
		out = make([]*models.Course, 0, len(rows))
		for _, c := range rows {
			out = append(out, st.joinedCourse(c))
		}
		return nil
	})
	return out, err
}

func (r courseRepo) List(_ context.Context) ([]*models.Course, error) {
	return r.list(nil)
}

func (r courseRepo) ListByDepartment(_ context.Context, departmentID int64) ([]*models.Course, error) {
	return r.list(func(_ *state, c models.Course) bool {
		return c.DepartmentID != nil && *c.DepartmentID == departmentID
	})
}

func (r courseRepo) ListByFaculty(_ context.Context, facultyID int64) ([]*models.Course, error) {
	return r.list(func(st *state, c models.Course) bool {
		_, ok := st.assignments[assignment{courseID: c.ID, facultyID: facultyID}]
		return ok
	})
}

func (r courseRepo) Search(_ context.Context, keyword string) ([]*models.Course, error) {
	return r.list(func(_ *state, c models.Course) bool {
		return containsFold(keyword, c.Name, c.Code, c.Description)
	})
}

func (r courseRepo) AssignFaculty(_ context.Context, courseID, facultyID int64) error {
	a := assignment{courseID: courseID, facultyID: facultyID}
	return r.v.write(func(st *state) error {
		if _, ok := st.courses[courseID]; !ok {
			return foreignKeyViolation(repositories.ConstraintAssignmentCourse)
		}
		if _, ok := st.faculty[facultyID]; !ok {
			return foreignKeyViolation(repositories.ConstraintAssignmentFaculty)
		}
		if _, ok := st.assignments[a]; ok {
			return uniqueViolation(repositories.ConstraintCourseFacultyPK)
		}
		st.assignments[a] = struct{}{}
		return nil
	})
}

func (r courseRepo) UnassignFaculty(_ context.Context, courseID, facultyID int64) error {
	a := assignment{courseID: courseID, facultyID: facultyID}
	return r.v.write(func(st *state) error {
		if _, ok := st.assignments[a]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.assignments, a)
		return nil
	})
}

type publicationRepo struct{ v *view }

func storedPublication(p *models.Publication) models.Publication {
	row := *p
	row.Faculty = nil
	return row
}

func (st *state) joinedPublication(row models.Publication) *models.Publication {
	p := row
	if f, ok := st.faculty[row.FacultyID]; ok {
		p.Faculty = &models.FacultyProfile{ID: f.ID, UserID: f.UserID, FirstName: f.FirstName, LastName: f.LastName}
	}
	return &p
}

func (r publicationRepo) Create(_ context.Context, p *models.Publication) error {
	row := storedPublication(p)
	row.ID = r.v.s.nextID("publications")
	row.CreatedAt = r.v.s.now()
	row.UpdatedAt = row.CreatedAt
	err := r.v.write(func(st *state) error {
		if _, ok := st.faculty[row.FacultyID]; !ok {
			return foreignKeyViolation(repositories.ConstraintPublicationFaculty)
		}
		st.publications[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r publicationRepo) Update(_ context.Context, p *models.Publication) error {
	row := storedPublication(p)
	row.UpdatedAt = r.v.s.now()
	err := r.v.write(func(st *state) error {
		existing, ok := st.publications[row.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if _, ok := st.faculty[row.FacultyID]; !ok {
			return foreignKeyViolation(repositories.ConstraintPublicationFaculty)
		}
		row.CreatedAt = existing.CreatedAt
		st.publications[row.ID] = row
		return nil
	})
	if err != nil {
		return err
	}
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r publicationRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.publications[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.publications, id)
		return nil
	})
}

func (r publicationRepo) GetByID(_ context.Context, id int64) (*models.Publication, error) {
	var found *models.Publication
	err := r.v.read(func(st *state) error {
		p, ok := st.publications[id]
		if !ok {
			return repositories.ErrNotFound
		}
		found = st.joinedPublication(p)
		return nil
	})
	return found, err
}

func (r publicationRepo) list(keep func(models.Publication) bool) ([]*models.Publication, error) {
	var out []*models.Publication
	err := r.v.read(func(st *state) error {
		rows := byID(st.publications, keep, func(p models.Publication) int64 { return p.ID })
		out = make([]*models.Publication, 0, len(rows))
		for _, p := range rows {
			out = append(out, st.joinedPublication(p))
		}
		return nil
	})
	return out, err
}

func (r publicationRepo) List(_ context.Context) ([]*models.Publication, error) {
	return r.list(nil)
}

func (r publicationRepo) ListByFaculty(_ context.Context, facultyID int64) ([]*models.Publication, error) {
	out, err := r.list(func(p models.Publication) bool { return p.FacultyID == facultyID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *models.Publication) int {
		if c := b.PublicationDate.Compare(a.PublicationDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r publicationRepo) CountByFaculty(ctx context.Context, facultyID int64) (int64, error) {
	out, err := r.ListByFaculty(ctx, facultyID)
	return int64(len(out)), err
}

func (r publicationRepo) Search(_ context.Context, keyword string) ([]*models.Publication, error) {
	return r.list(func(p models.Publication) bool {
		return containsFold(keyword, p.Title, p.JournalName, p.AbstractText)
	})
}

type enrollmentRepo struct{ v *view }

func copyEnrollment(e models.StudentEnrollment) *models.StudentEnrollment {
	e.Grade = clonePtr(e.Grade)
	return &e
}

func (r enrollmentRepo) Create(_ context.Context, e *models.StudentEnrollment) error {
	row := *copyEnrollment(*e)
	if row.EnrollmentDate.IsZero() {
		row.EnrollmentDate = r.v.s.now()
	}
	err := r.v.write(func(st *state) error {
		if _, ok := st.users[row.StudentID]; !ok {
			return foreignKeyViolation(repositories.ConstraintEnrollmentStudent)
		}
		if _, ok := st.courses[row.CourseID]; !ok {
			return foreignKeyViolation(repositories.ConstraintEnrollmentCourse)
		}
		if _, ok := st.enrollments[row.EnrollmentKey]; ok {
			return uniqueViolation(repositories.ConstraintEnrollmentPK)
		}
		st.enrollments[row.EnrollmentKey] = row
		return nil
	})
	if err != nil {
		return err
	}
	e.EnrollmentDate = row.EnrollmentDate
	return nil
}

func (r enrollmentRepo) Delete(_ context.Context, key models.EnrollmentKey) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.enrollments[key]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.enrollments, key)
		return nil
	})
}

func (r enrollmentRepo) Get(_ context.Context, key models.EnrollmentKey) (*models.StudentEnrollment, error) {
	var found *models.StudentEnrollment
	err := r.v.read(func(st *state) error {
		e, ok := st.enrollments[key]
		if !ok {
			return repositories.ErrNotFound
		}
		found = copyEnrollment(e)
		return nil
	})
	return found, err
}

func (r enrollmentRepo) UpdateGrade(_ context.Context, key models.EnrollmentKey, grade *string) error {
	grade = clonePtr(grade)
	return r.v.write(func(st *state) error {
		e, ok := st.enrollments[key]
		if !ok {
			return repositories.ErrNotFound
		}
		e.Grade = grade
		st.enrollments[key] = e
		return nil
	})
}

func (r enrollmentRepo) list(keep func(models.StudentEnrollment) bool, secondary func(models.EnrollmentKey) int64) ([]*models.StudentEnrollment, error) {
	var out []*models.StudentEnrollment
	err := r.v.read(func(st *state) error {
		out = []*models.StudentEnrollment{}
		for _, e := range st.enrollments {
			if keep(e) {
				out = append(out, copyEnrollment(e))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.StudentEnrollment) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Semester, b.Semester),
			cmp.Compare(secondary(a.EnrollmentKey), secondary(b.EnrollmentKey)),
		)
	})
	return out, err
}

func (r enrollmentRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.StudentEnrollment, error) {
	return r.list(
		func(e models.StudentEnrollment) bool { return e.StudentID == studentID },
		func(k models.EnrollmentKey) int64 { return k.CourseID },
	)
}

func (r enrollmentRepo) ListByCourse(_ context.Context, courseID int64, filter repositories.EnrollmentFilter) ([]*models.StudentEnrollment, error) {
	return r.list(func(e models.StudentEnrollment) bool {
		return e.CourseID == courseID &&
			(filter.Semester == "" || e.Semester == filter.Semester) &&
			(filter.Year == 0 || e.Year == filter.Year)
	}, func(k models.EnrollmentKey) int64 { return k.StudentID })
}

func (r enrollmentRepo) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	out, err := r.ListByCourse(ctx, courseID, repositories.EnrollmentFilter{})
	return int64(len(out)), err
}

func (r enrollmentRepo) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	out, err := r.ListByStudent(ctx, studentID)
	return int64(len(out)), err
}
