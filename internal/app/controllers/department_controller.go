package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
)

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 401 {object} dto.StructuredResponse "Unauthorized"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, departments, "Departments retrieved successfully")
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Department} "Department retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid department ID"
// @Failure 404 {object} dto.StructuredResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	department, err := c.departmentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, department, "Department retrieved successfully")
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DepartmentRequest true "Department information"
// @Success 201 {object} dto.StructuredResponse{data=models.Department} "Department created successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request data"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 409 {object} dto.StructuredResponse "Department already exists"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	department, err := c.departmentService.Create(ctx.Request.Context(), services.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, department, "Department created successfully")
}

// UpdateDepartment handles department updates
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.DepartmentRequest true "Department information"
// @Success 200 {object} dto.StructuredResponse{data=models.Department} "Department updated successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request data"
// @Failure 404 {object} dto.StructuredResponse "Department not found"
// @Failure 409 {object} dto.StructuredResponse "Department name already exists"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	department, err := c.departmentService.Update(ctx.Request.Context(), id, services.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, department, "Department updated successfully")
}

// DeleteDepartment removes a department with its courses and faculty profiles
// @Summary Delete a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse "Department deleted successfully"
// @Failure 404 {object} dto.StructuredResponse "Department not found"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	if err := c.departmentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Department deleted successfully")
}
