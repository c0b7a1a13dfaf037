package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

// FacultyController handles faculty profiles
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

func facultyInput(req dto.FacultyRequest) (services.FacultyInput, error) {
	in := services.FacultyInput{
		UserID:            req.UserID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		DepartmentID:      req.DepartmentID,
		Phone:             req.Phone,
		OfficeLocation:    req.OfficeLocation,
	}
	if req.HireDate != "" {
		d, err := models.ParseDate(req.HireDate)
		if err != nil {
			return in, apperrors.NewValidationError(err.Error())
		}
		in.HireDate = &d
	}
	return in, nil
}

// GetAllFaculty lists faculty profiles
// @Summary List faculty
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.FacultyProfile} "Faculty retrieved successfully"
// @Router /faculty [get]
func (c *FacultyController) GetAllFaculty(ctx *gin.Context) {
	profiles, err := c.facultyService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profiles, "Faculty retrieved successfully")
}

// GetFacultyByID retrieves a faculty profile
// @Summary Get faculty by ID
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse{data=models.FacultyProfile} "Faculty retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	profile, err := c.facultyService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profile, "Faculty retrieved successfully")
}

// GetFacultyByUser retrieves the profile attached to a user
// @Summary Get faculty by user ID
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=models.FacultyProfile} "Faculty retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /faculty/user/{userId} [get]
func (c *FacultyController) GetFacultyByUser(ctx *gin.Context) {
	id, valid := parseID(ctx, "userId")
	if !valid {
		return
	}

	profile, err := c.facultyService.GetByUserID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profile, "Faculty retrieved successfully")
}

// GetFacultyByDepartment lists a department's faculty
// @Summary List faculty of a department
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param departmentId path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.FacultyProfile} "Faculty retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Department not found"
// @Router /faculty/department/{departmentId} [get]
func (c *FacultyController) GetFacultyByDepartment(ctx *gin.Context) {
	id, valid := parseID(ctx, "departmentId")
	if !valid {
		return
	}

	profiles, err := c.facultyService.ListByDepartment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profiles, "Faculty retrieved successfully")
}

// SearchFaculty matches names and bio case-insensitively
// @Summary Search faculty
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Keyword"
// @Success 200 {object} dto.StructuredResponse{data=[]models.FacultyProfile} "Faculty retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Missing keyword"
// @Router /faculty/search [get]
func (c *FacultyController) SearchFaculty(ctx *gin.Context) {
	kw, valid := keyword(ctx)
	if !valid {
		return
	}

	profiles, err := c.facultyService.Search(ctx.Request.Context(), kw)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profiles, "Faculty retrieved successfully")
}

// CreateFaculty creates a faculty profile for an existing user
// @Summary Create faculty profile
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FacultyRequest true "Faculty profile"
// @Success 201 {object} dto.StructuredResponse{data=models.FacultyProfile} "Faculty created successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request, unknown user or department"
// @Failure 409 {object} dto.StructuredResponse "User already has a profile"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	in, err := facultyInput(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.facultyService.Create(ctx.Request.Context(), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, profile, "Faculty created successfully")
}

// UpdateFaculty updates a faculty profile
// @Summary Update faculty profile
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Param request body dto.FacultyRequest true "Faculty profile"
// @Success 200 {object} dto.StructuredResponse{data=models.FacultyProfile} "Faculty updated successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request, unknown user or department"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Failure 409 {object} dto.StructuredResponse "User already has a profile"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.FacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	in, err := facultyInput(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.facultyService.Update(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, profile, "Faculty updated successfully")
}

// DeleteFaculty removes a faculty profile and its publications
// @Summary Delete faculty profile
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse "Faculty deleted successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	if err := c.facultyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Faculty deleted successfully")
}
