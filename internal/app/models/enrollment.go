package models

import (
	"fmt"
	"time"
)

// EnrollmentKey is the natural identity of an enrollment. At most one row exists per key.
type EnrollmentKey struct {
	StudentID int64  `json:"studentId"`
	CourseID  int64  `json:"courseId"`
	Semester  string `json:"semester"`
	Year      int    `json:"year"`
}

// String renders the key for logs and error messages
func (k EnrollmentKey) String() string {
	return fmt.Sprintf("student=%d course=%d %s %d", k.StudentID, k.CourseID, k.Semester, k.Year)
}

// StudentEnrollment records a student taking a course in a given term
type StudentEnrollment struct {
	EnrollmentKey
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	Grade          *string   `json:"grade,omitempty" db:"grade"`
}
