package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

const (
	kindCourse     = "Course"
	kindAssignment = "Assignment"
)

// MaxCredits bounds the credit value of a single course
const MaxCredits = 100

// CourseInput carries the writable course fields
type CourseInput struct {
	Name         string
	Code         string
	Description  string
	Credits      int
	DepartmentID *int64
}

func (in *CourseInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	switch {
	case in.Name == "":
		return apperrors.NewValidationError("course name cannot be empty")
	case in.Code == "":
		return apperrors.NewValidationError("course code cannot be empty")
	case len(in.Code) > 20:
		return apperrors.NewValidationError("course code must be at most 20 characters")
	case utf8.RuneCountInString(in.Name) > 255:
		return apperrors.NewValidationError("course name must be at most 255 characters")
	case in.Credits <= 0 || in.Credits > MaxCredits:
		return apperrors.NewValidationError("credits must be between 1 and 100")
	}
	return nil
}

func (in CourseInput) references() []reference {
	return optionalRef(kindDepartment, in.DepartmentID, departmentExists)
}

func courseCodeField(code string) uniqueField {
	return uniqueField{
		field: "code",
		value: code,
		owner: ownerOf(func(ctx context.Context, tx repositories.Store) (*models.Course, error) {
			return tx.Courses().GetByCode(ctx, code)
		}, func(c *models.Course) int64 { return c.ID }),
	}
}

// CourseService handles courses and teaching assignments
type CourseService struct {
	store repositories.Store
	integrity
}

// NewCourseService creates a new CourseService
func NewCourseService(store repositories.Store) *CourseService {
	return &CourseService{store: store, integrity: integrity{store: store}}
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.store.Courses().List(ctx)
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, err := s.store.Courses().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, kindCourse, id)
	}
	return c, nil
}

// ListByDepartment returns the courses owned by a department
func (s *CourseService) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	if _, err := s.store.Departments().GetByID(ctx, departmentID); err != nil {
		return nil, notFound(err, kindDepartment, departmentID)
	}
	return s.store.Courses().ListByDepartment(ctx, departmentID)
}

// ListByFaculty returns the courses a faculty member teaches
func (s *CourseService) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error) {
	if _, err := s.store.Faculty().GetByID(ctx, facultyID); err != nil {
		return nil, notFound(err, kindFaculty, facultyID)
	}
	return s.store.Courses().ListByFaculty(ctx, facultyID)
}

// Search matches name, code or description case-insensitively
func (s *CourseService) Search(ctx context.Context, keyword string) ([]*models.Course, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperrors.NewValidationError("keyword cannot be empty")
	}
	return s.store.Courses().Search(ctx, keyword)
}

// Create creates a course; the code must be unique and the department must exist
func (s *CourseService) Create(ctx context.Context, in CourseInput) (*models.Course, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:         in.Name,
		Code:         in.Code,
		Description:  in.Description,
		Credits:      in.Credits,
		DepartmentID: in.DepartmentID,
	}
	err := s.run(ctx, mutation{
		kind:   kindCourse,
		refs:   in.references(),
		unique: []uniqueField{courseCodeField(in.Code)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			if err := tx.Courses().Create(ctx, course); err != nil {
				return err
			}
			created, err := tx.Courses().GetByID(ctx, course.ID)
			if err != nil {
				return err
			}
			*course = *created
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// Update replaces every writable field of the course
func (s *CourseService) Update(ctx context.Context, id int64, in CourseInput) (*models.Course, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var course *models.Course
	err := s.run(ctx, mutation{
		kind:     kindCourse,
		targetID: id,
		selfID:   id,
		target: func(ctx context.Context, tx repositories.Store) (err error) {
			course, err = tx.Courses().GetByID(ctx, id)
			return err
		},
		refs:   in.references(),
		unique: []uniqueField{courseCodeField(in.Code)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			course.Name = in.Name
			course.Code = in.Code
			course.Description = in.Description
			course.Credits = in.Credits
			course.DepartmentID = in.DepartmentID
			if err := tx.Courses().Update(ctx, course); err != nil {
				return err
			}
			updated, err := tx.Courses().GetByID(ctx, id)
			if err != nil {
				return err
			}
			course = updated
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course with its enrollments and teaching assignments
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, kindCourse, id, func(ctx context.Context, tx repositories.Store) error {
		return tx.Courses().Delete(ctx, id)
	})
}

// AssignInstructor records that a faculty member teaches the course
func (s *CourseService) AssignInstructor(ctx context.Context, courseID, facultyID int64) error {
	key := fmt.Sprintf("course=%d faculty=%d", courseID, facultyID)
	return s.run(ctx, mutation{
		kind:     kindCourse,
		targetID: courseID,
		target: func(ctx context.Context, tx repositories.Store) error {
			return courseExists(ctx, tx, courseID)
		},
		refs: []reference{requiredRef(kindFaculty, facultyID, facultyExists)},
		unique: []uniqueField{{
			field: "assignment",
			value: key,
			owner: func(ctx context.Context, tx repositories.Store) (int64, error) {
				taught, err := tx.Courses().ListByFaculty(ctx, facultyID)
				if err != nil {
					return 0, err
				}
				for _, c := range taught {
					if c.ID == courseID {
						return c.ID, nil
					}
				}
				return 0, repositories.ErrNotFound
			},
		}},
		apply: func(ctx context.Context, tx repositories.Store) error {
			return tx.Courses().AssignFaculty(ctx, courseID, facultyID)
		},
	})
}

// UnassignInstructor removes a teaching assignment
func (s *CourseService) UnassignInstructor(ctx context.Context, courseID, facultyID int64) error {
	return s.run(ctx, mutation{
		kind:     kindAssignment,
		targetID: fmt.Sprintf("course=%d faculty=%d", courseID, facultyID),
		apply: func(ctx context.Context, tx repositories.Store) error {
			return tx.Courses().UnassignFaculty(ctx, courseID, facultyID)
		},
	})
}
