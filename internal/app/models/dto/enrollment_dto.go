package dto

import "github.com/yigit/unifms/internal/app/models"

// EnrollmentKeyRequest identifies an enrollment within the course given by the path
type EnrollmentKeyRequest struct {
	StudentID int64  `json:"studentId" form:"studentId" binding:"required,gt=0" example:"7"`
	Semester  string `json:"semester" form:"semester" binding:"required,semester" example:"FALL"`
	Year      int    `json:"year" form:"year" binding:"required,min=1900,max=9999" example:"2025"`
}

// Key combines the request with the course id from the path
func (r EnrollmentKeyRequest) Key(courseID int64) models.EnrollmentKey {
	return models.EnrollmentKey{
		StudentID: r.StudentID,
		CourseID:  courseID,
		Semester:  r.Semester,
		Year:      r.Year,
	}
}

// EnrollRequest represents enrolling a student in a course
type EnrollRequest struct {
	EnrollmentKeyRequest
	Grade *string `json:"grade" binding:"omitempty,max=5" example:"A"`
}

// GradeRequest records or clears a grade
type GradeRequest struct {
	EnrollmentKeyRequest
	Grade *string `json:"grade" binding:"omitempty,max=5" example:"B+"`
}

// EnrollmentQuery narrows course enrollment listings
type EnrollmentQuery struct {
	Semester string `form:"semester" binding:"omitempty,semester"`
	Year     int    `form:"year" binding:"omitempty,min=1900,max=9999"`
}
