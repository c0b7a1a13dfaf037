package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/auth"
	"github.com/yigit/unifms/internal/app/controllers"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/middleware"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Roles        *controllers.RoleController
	Departments  *controllers.DepartmentController
	Courses      *controllers.CourseController
	Faculty      *controllers.FacultyController
	Publications *controllers.PublicationController
}

// SetupRouter configures all application routes. userOwner resolves the user id owning a
// user id for the self-service user routes.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, userOwner auth.OwnerLookup) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "UP"}, "Service is healthy"))
	})

	// --- Public Auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", c.Auth.Login)
		authRoutes.POST("/register", c.Auth.Register)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	require := authMiddleware.Require
	adminOnly := require(auth.AdminOnly(), "")
	adminOrHR := require(auth.AnyOf(models.RoleAdmin, models.RoleHR), "")
	adminOrFaculty := require(auth.AnyOf(models.RoleAdmin, models.RoleFaculty), "")
	adminOrSelf := require(auth.Or(auth.AdminOnly(), auth.Owner(userOwner)), "id")

	me := authenticated.Group("/auth")
	{
		me.POST("/logout", c.Auth.Logout)
		me.GET("/me", c.Auth.Me)
	}

	users := authenticated.Group("/users")
	{
		users.GET("", adminOnly, c.Users.GetAllUsers)
		users.POST("", adminOnly, c.Users.CreateUser)
		users.GET("/role/:roleName", adminOrHR, c.Users.GetUsersByRole)
		users.GET("/:id", adminOrSelf, c.Users.GetUserByID)
		users.PUT("/:id", adminOrSelf, c.Users.UpdateUser)
		users.DELETE("/:id", adminOnly, c.Users.DeleteUser)
		users.GET("/:id/enrollments", adminOrSelf, c.Users.GetUserEnrollments)
	}

	authenticated.GET("/roles", adminOnly, c.Roles.GetAllRoles)

	departments := authenticated.Group("/departments")
	{
		departments.GET("", c.Departments.GetAllDepartments)
		departments.GET("/:id", c.Departments.GetDepartmentByID)
		departments.POST("", adminOnly, c.Departments.CreateDepartment)
		departments.PUT("/:id", adminOnly, c.Departments.UpdateDepartment)
		departments.DELETE("/:id", adminOnly, c.Departments.DeleteDepartment)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Courses.GetAllCourses)
		courses.GET("/search", c.Courses.SearchCourses)
		courses.GET("/department/:departmentId", c.Courses.GetCoursesByDepartment)
		courses.GET("/faculty/:facultyId", c.Courses.GetCoursesByFaculty)
		courses.GET("/:id", c.Courses.GetCourseByID)
		courses.POST("", adminOnly, c.Courses.CreateCourse)
		courses.PUT("/:id", adminOnly, c.Courses.UpdateCourse)
		courses.DELETE("/:id", adminOnly, c.Courses.DeleteCourse)

		courses.POST("/:id/instructors/:facultyId", adminOrHR, c.Courses.AssignInstructor)
		courses.DELETE("/:id/instructors/:facultyId", adminOrHR, c.Courses.UnassignInstructor)

		courses.GET("/:id/enrollments", adminOrFaculty, c.Courses.GetEnrollments)
		courses.GET("/:id/enrollments/count", adminOrFaculty, c.Courses.CountEnrollments)
		courses.POST("/:id/enrollments", adminOnly, c.Courses.Enroll)
		courses.DELETE("/:id/enrollments", adminOnly, c.Courses.Unenroll)
		courses.PUT("/:id/enrollments/grade", adminOrFaculty, c.Courses.UpdateGrade)
	}

	faculty := authenticated.Group("/faculty")
	{
		faculty.GET("", c.Faculty.GetAllFaculty)
		faculty.GET("/search", c.Faculty.SearchFaculty)
		faculty.GET("/user/:userId", c.Faculty.GetFacultyByUser)
		faculty.GET("/department/:departmentId", c.Faculty.GetFacultyByDepartment)
		faculty.GET("/:id", c.Faculty.GetFacultyByID)
		faculty.POST("", adminOrHR, c.Faculty.CreateFaculty)
		faculty.PUT("/:id", require(auth.AnyOf(models.RoleAdmin, models.RoleHR, models.RoleFaculty), ""), c.Faculty.UpdateFaculty)
		faculty.DELETE("/:id", adminOnly, c.Faculty.DeleteFaculty)
	}

	publications := authenticated.Group("/publications")
	{
		publications.GET("", c.Publications.GetAllPublications)
		publications.GET("/search", c.Publications.SearchPublications)
		publications.GET("/faculty/:facultyId", c.Publications.GetPublicationsByFaculty)
		publications.GET("/faculty/:facultyId/count", c.Publications.CountPublicationsByFaculty)
		publications.GET("/:id", c.Publications.GetPublicationByID)
		publications.POST("", adminOrFaculty, c.Publications.CreatePublication)
		publications.PUT("/:id", adminOrFaculty, c.Publications.UpdatePublication)
		publications.DELETE("/:id", adminOrFaculty, c.Publications.DeletePublication)
	}
}
