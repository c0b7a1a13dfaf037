package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
)

// UserController handles user management
type UserController struct {
	userService       *services.UserService
	enrollmentService *services.EnrollmentService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, enrollmentService *services.EnrollmentService) *UserController {
	return &UserController{
		userService:       userService,
		enrollmentService: enrollmentService,
	}
}

// GetAllUsers lists every user
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.UserResponse} "Users retrieved successfully"
// @Failure 401 {object} dto.StructuredResponse "Unauthorized"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.NewUserResponses(users), "Users retrieved successfully")
}

// GetUserByID retrieves a user by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid user ID"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 404 {object} dto.StructuredResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.NewUserResponse(user), "User retrieved successfully")
}

// GetUsersByRole lists the holders of a role
// @Summary List users by role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param roleName path string true "Role name" Enums(ADMIN, FACULTY, HR, STUDENT)
// @Success 200 {object} dto.StructuredResponse{data=[]dto.UserResponse} "Users retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Unknown role"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Router /users/role/{roleName} [get]
func (c *UserController) GetUsersByRole(ctx *gin.Context) {
	users, err := c.userService.ListByRole(ctx.Request.Context(), ctx.Param("roleName"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.NewUserResponses(users), "Users retrieved successfully")
}

// CreateUser creates an account with an explicit role set
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.StructuredResponse{data=dto.UserResponse} "User created successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown role"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 409 {object} dto.StructuredResponse "Username or email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), services.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, dto.NewUserResponse(user), "User created successfully")
}

// UpdateUser replaces a user's identity, password and roles
// @Summary Update user
// @Description Only administrators may change roles. A blank password keeps the current one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User information"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "User updated successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown role"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 404 {object} dto.StructuredResponse "User not found"
// @Failure 409 {object} dto.StructuredResponse "Username or email already exists"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, services.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.NewUserResponse(user), "User updated successfully")
}

// DeleteUser removes a user with everything it owns
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse "User deleted successfully"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 404 {object} dto.StructuredResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "User deleted successfully")
}

// GetUserEnrollments lists a student's enrollments
// @Summary List enrollments of a student
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.StudentEnrollment} "Enrollments retrieved successfully"
// @Failure 403 {object} dto.StructuredResponse "Forbidden"
// @Failure 404 {object} dto.StructuredResponse "User not found"
// @Router /users/{id}/enrollments [get]
func (c *UserController) GetUserEnrollments(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	enrollments, err := c.enrollmentService.ListByStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, enrollments, "Enrollments retrieved successfully")
}
