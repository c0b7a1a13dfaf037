package services

import (
	"context"
	"strings"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

const kindEnrollment = "Enrollment"

// EnrollmentService manages enrollments. An enrollment is identified by its
// (student, course, semester, year) key and exists at most once.
type EnrollmentService struct {
	store repositories.Store
	integrity
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(store repositories.Store) *EnrollmentService {
	return &EnrollmentService{store: store, integrity: integrity{store: store}}
}

func normalizeKey(key *models.EnrollmentKey) error {
	key.Semester = strings.ToUpper(strings.TrimSpace(key.Semester))
	switch {
	case key.StudentID <= 0:
		return apperrors.NewValidationError("studentId is required")
	case key.Semester == "":
		return apperrors.NewValidationError("semester cannot be empty")
	case len(key.Semester) > 20:
		return apperrors.NewValidationError("semester must be at most 20 characters")
	case key.Year < 1900 || key.Year > 9999:
		return apperrors.NewValidationError("year is out of range")
	}
	return nil
}

func validateGrade(grade *string) error {
	if grade != nil && len(*grade) > 5 {
		return apperrors.NewValidationError("grade must be at most 5 characters")
	}
	return nil
}

// Enroll creates an enrollment. Enrolling the same key twice is a DuplicateKey.
func (s *EnrollmentService) Enroll(ctx context.Context, key models.EnrollmentKey, grade *string) (*models.StudentEnrollment, error) {
	if err := normalizeKey(&key); err != nil {
		return nil, err
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}

	enrollment := &models.StudentEnrollment{EnrollmentKey: key, Grade: grade}
	err := s.run(ctx, mutation{
		kind:     kindCourse,
		targetID: key.CourseID,
		target: func(ctx context.Context, tx repositories.Store) error {
			return courseExists(ctx, tx, key.CourseID)
		},
		refs: []reference{requiredRef(kindUser, key.StudentID, userExists)},
		unique: []uniqueField{{
			field: "enrollment",
			value: key.String(),
			owner: func(ctx context.Context, tx repositories.Store) (int64, error) {
				_, err := tx.Enrollments().Get(ctx, key)
				return 0, err
			},
		}},
		apply: func(ctx context.Context, tx repositories.Store) error {
			return tx.Enrollments().Create(ctx, enrollment)
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("enrollment", key.String()).Msg("Student enrolled")
	return enrollment, nil
}

// Unenroll removes one enrollment
func (s *EnrollmentService) Unenroll(ctx context.Context, key models.EnrollmentKey) error {
	if err := normalizeKey(&key); err != nil {
		return err
	}
	return s.run(ctx, mutation{
		kind:     kindEnrollment,
		targetID: key.String(),
		apply: func(ctx context.Context, tx repositories.Store) error {
			return tx.Enrollments().Delete(ctx, key)
		},
	})
}

// UpdateGrade records or clears the grade of an existing enrollment
func (s *EnrollmentService) UpdateGrade(ctx context.Context, key models.EnrollmentKey, grade *string) (*models.StudentEnrollment, error) {
	if err := normalizeKey(&key); err != nil {
		return nil, err
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}

	var enrollment *models.StudentEnrollment
	err := s.run(ctx, mutation{
		kind:     kindEnrollment,
		targetID: key.String(),
		apply: func(ctx context.Context, tx repositories.Store) error {
			if err := tx.Enrollments().UpdateGrade(ctx, key, grade); err != nil {
				return err
			}
			var err error
			enrollment, err = tx.Enrollments().Get(ctx, key)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListByCourse returns a course's enrollments, optionally narrowed to one term
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int64, filter repositories.EnrollmentFilter) ([]*models.StudentEnrollment, error) {
	if _, err := s.store.Courses().GetByID(ctx, courseID); err != nil {
		return nil, notFound(err, kindCourse, courseID)
	}
	filter.Semester = strings.ToUpper(strings.TrimSpace(filter.Semester))
	return s.store.Enrollments().ListByCourse(ctx, courseID, filter)
}

func (s *EnrollmentService) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	if _, err := s.store.Courses().GetByID(ctx, courseID); err != nil {
		return 0, notFound(err, kindCourse, courseID)
	}
	return s.store.Enrollments().CountByCourse(ctx, courseID)
}

// ListByStudent returns a student's enrollments
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentEnrollment, error) {
	if _, err := s.store.Users().GetByID(ctx, studentID); err != nil {
		return nil, notFound(err, kindUser, studentID)
	}
	return s.store.Enrollments().ListByStudent(ctx, studentID)
}
