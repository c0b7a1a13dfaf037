package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
)

// CourseController handles courses, teaching assignments and enrollments
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

func courseInput(r dto.CourseRequest) services.CourseInput {
	return services.CourseInput{
		Name:         r.Name,
		Code:         r.Code,
		Description:  r.Description,
		Credits:      r.Credits,
		DepartmentID: r.DepartmentID,
	}
}

// GetAllCourses lists courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.Course} "Courses retrieved successfully"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses, "Courses retrieved successfully")
}

// GetCourseByID retrieves a course
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Course} "Course retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	course, err := c.courseService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course, "Course retrieved successfully")
}

// GetCoursesByDepartment lists a department's courses
// @Summary List courses of a department
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Department not found"
// @Router /courses/department/{departmentId} [get]
func (c *CourseController) GetCoursesByDepartment(ctx *gin.Context) {
	id, valid := parseID(ctx, "departmentId")
	if !valid {
		return
	}

	courses, err := c.courseService.ListByDepartment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses, "Courses retrieved successfully")
}

// GetCoursesByFaculty lists the courses a faculty member teaches
// @Summary List courses taught by a faculty member
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /courses/faculty/{facultyId} [get]
func (c *CourseController) GetCoursesByFaculty(ctx *gin.Context) {
	id, valid := parseID(ctx, "facultyId")
	if !valid {
		return
	}

	courses, err := c.courseService.ListByFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses, "Courses retrieved successfully")
}

// SearchCourses matches name, code and description case-insensitively
// @Summary Search courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Keyword"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Missing keyword"
// @Router /courses/search [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	kw, valid := keyword(ctx)
	if !valid {
		return
	}

	courses, err := c.courseService.Search(ctx.Request.Context(), kw)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses, "Courses retrieved successfully")
}

// CreateCourse creates a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.StructuredResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown department"
// @Failure 409 {object} dto.StructuredResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), courseInput(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, course, "Course created successfully")
}

// UpdateCourse updates a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} dto.StructuredResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown department"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Failure 409 {object} dto.StructuredResponse "Course code already exists"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), id, courseInput(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course, "Course updated successfully")
}

// DeleteCourse removes a course with its enrollments
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse "Course deleted successfully"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Course deleted successfully")
}

// AssignInstructor records that a faculty member teaches a course
// @Summary Assign instructor
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param facultyId path int true "Faculty profile ID"
// @Success 201 {object} dto.StructuredResponse "Instructor assigned successfully"
// @Failure 400 {object} dto.StructuredResponse "Unknown faculty"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Failure 409 {object} dto.StructuredResponse "Already assigned"
// @Router /courses/{id}/instructors/{facultyId} [post]
func (c *CourseController) AssignInstructor(ctx *gin.Context) {
	courseID, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	facultyID, valid := parseID(ctx, "facultyId")
	if !valid {
		return
	}

	if err := c.courseService.AssignInstructor(ctx.Request.Context(), courseID, facultyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, nil, "Instructor assigned successfully")
}

// UnassignInstructor removes a teaching assignment
// @Summary Unassign instructor
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param facultyId path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse "Instructor unassigned successfully"
// @Failure 404 {object} dto.StructuredResponse "Assignment not found"
// @Router /courses/{id}/instructors/{facultyId} [delete]
func (c *CourseController) UnassignInstructor(ctx *gin.Context) {
	courseID, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	facultyID, valid := parseID(ctx, "facultyId")
	if !valid {
		return
	}

	if err := c.courseService.UnassignInstructor(ctx.Request.Context(), courseID, facultyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Instructor unassigned successfully")
}

// GetEnrollments lists a course's enrollments, optionally for one term
// @Summary List course enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param semester query string false "Semester"
// @Param year query int false "Year"
// @Success 200 {object} dto.StructuredResponse{data=[]models.StudentEnrollment} "Enrollments retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Router /courses/{id}/enrollments [get]
func (c *CourseController) GetEnrollments(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var q dto.EnrollmentQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListByCourse(ctx.Request.Context(), id, repositories.EnrollmentFilter{
		Semester: q.Semester,
		Year:     q.Year,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, enrollments, "Enrollments retrieved successfully")
}

// CountEnrollments counts a course's enrollments
// @Summary Count course enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CountResponse} "Enrollment count retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Router /courses/{id}/enrollments/count [get]
func (c *CourseController) CountEnrollments(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	n, err := c.enrollmentService.CountByCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.CountResponse{Count: n}, "Enrollment count retrieved successfully")
}

// Enroll enrolls a student in the course
// @Summary Enroll student
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.EnrollRequest true "Enrollment"
// @Success 201 {object} dto.StructuredResponse{data=models.StudentEnrollment} "Student enrolled successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown student"
// @Failure 404 {object} dto.StructuredResponse "Course not found"
// @Failure 409 {object} dto.StructuredResponse "Already enrolled for this term"
// @Router /courses/{id}/enrollments [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), req.Key(id), req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, enrollment, "Student enrolled successfully")
}

// Unenroll removes an enrollment
// @Summary Unenroll student
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.EnrollmentKeyRequest true "Enrollment key"
// @Success 200 {object} dto.StructuredResponse "Student unenrolled successfully"
// @Failure 404 {object} dto.StructuredResponse "Enrollment not found"
// @Router /courses/{id}/enrollments [delete]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.EnrollmentKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), req.Key(id)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Student unenrolled successfully")
}

// UpdateGrade records or clears a grade
// @Summary Record grade
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.GradeRequest true "Enrollment key and grade"
// @Success 200 {object} dto.StructuredResponse{data=models.StudentEnrollment} "Grade updated successfully"
// @Failure 404 {object} dto.StructuredResponse "Enrollment not found"
// @Router /courses/{id}/enrollments/grade [put]
func (c *CourseController) UpdateGrade(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.UpdateGrade(ctx.Request.Context(), req.Key(id), req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, enrollment, "Grade updated successfully")
}
