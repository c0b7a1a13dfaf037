package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login handles user login
// @Summary Log in
// @Description Exchanges a username and password for a signed access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.StructuredResponse "Invalid request format"
// @Failure 401 {object} dto.StructuredResponse "Invalid username or password"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.NewLoginResponse(result.Token, result.ExpiresIn, result.User), "Login successful")
}

// Register handles self-registration
// @Summary Register a student account
// @Description Creates a new account holding the STUDENT role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.StructuredResponse{data=dto.UserResponse} "Registration successful"
// @Failure 400 {object} dto.StructuredResponse "Invalid request format"
// @Failure 409 {object} dto.StructuredResponse "Username or email already exists"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, dto.NewUserResponse(user), "Registration successful")
}

// Logout acknowledges a logout. Tokens stay valid until they expire.
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Logout successful"
// @Failure 401 {object} dto.StructuredResponse "Unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if p, found := middleware.Principal(ctx); found {
		logger.Ctx(ctx.Request.Context()).Info().Str("username", p.Username).Msg("User logged out")
	}
	ok(ctx, nil, "Logout successful")
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Current user"
// @Failure 401 {object} dto.StructuredResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	p, found := middleware.Principal(ctx)
	if !found {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthenticatedError(nil))
		return
	}

	user, err := c.authService.Me(ctx.Request.Context(), p.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.NewUserResponse(user), "Current user retrieved successfully")
}
